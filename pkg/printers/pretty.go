// Package printers renders timesheet state for the terminal.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/punch/pkg/entry"
)

// PrettyPrint renders entries and week grids with a little color.
type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))

// NewLine prints a blank line.
func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

// Title prints a bold underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Result prints a faint one-line outcome, e.g. after a bulk operation.
func (pp *PrettyPrint) Result(format string, args ...any) {
	c := color.New(color.Faint)
	_, _ = c.Printf(format+"\n", args...)
}

// StatusGlyph maps a workflow status to a single display rune.
func StatusGlyph(s entry.Status) string {
	switch s {
	case entry.StatusPending:
		return "›"
	case entry.StatusApproved:
		return "✔"
	case entry.StatusRejected:
		return "✘"
	default:
		return "●"
	}
}

// Entries prints a flat entry list, one line per entry.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, e := range entries {
		group := e.GroupRef()
		if group == "" {
			group = "-"
		}
		task := e.Task
		if task == "" {
			task = "-"
		}
		row := []interface{}{
			StatusGlyph(e.Status),
			e.Date.Format("Mon Jan 2"),
			group,
			task,
			fmt.Sprintf("%.2fh", e.Hours),
			e.Description,
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
