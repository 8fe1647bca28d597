package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/punch/pkg/app"
)

// Week prints the calendar view: one line per grouping row, a column per
// day, and the day totals underneath.
func (pp *PrettyPrint) Week(sum app.WeekSummary) {
	days := sum.Window.Days()

	header := fmt.Sprintf("Week of %s", sum.Window.Anchor.Format("January 2, 2006"))
	pp.Title(header)

	tbl := uitable.New()
	tbl.Separator = "  "

	head := []interface{}{"", ""}
	for _, d := range days {
		head = append(head, fmt.Sprintf("%s %d", d.Weekday, d.Number))
	}
	head = append(head, "Total")
	tbl.AddRow(head...)

	for _, rs := range sum.Rows {
		row := []interface{}{rs.Row.GroupRef(), rs.Row.Task}
		for i := range days {
			row = append(row, cell(rs.DayHours[i]))
		}
		row = append(row, fmt.Sprintf("%.2f", rs.Total))
		tbl.AddRow(row...)
	}

	totals := []interface{}{"", ""}
	for i := range days {
		totals = append(totals, cell(sum.DayTotals[i]))
	}
	totals = append(totals, fmt.Sprintf("%.2f", sum.Total))
	tbl.AddRow(totals...)

	_, _ = fmt.Fprintln(color.Output, tbl)

	if len(sum.Rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" no entries this week")
	}
}

func cell(hours float64) string {
	if hours == 0 {
		return "·"
	}
	return fmt.Sprintf("%.2f", hours)
}
