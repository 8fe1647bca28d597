// Package legend provides the runner that explains the symbols the
// printers use.
package legend

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/punch/pkg/entry"
	"tableflip.dev/punch/pkg/printers"
)

type Legend struct{}

var statusMeanings = map[entry.Status]string{
	entry.StatusDraft:    "editable, not yet sent to review",
	entry.StatusPending:  "submitted, awaiting review",
	entry.StatusApproved: "reviewed and locked",
	entry.StatusRejected: "bounced back, editable again",
}

// Do prints the status symbols and what they mean.
func (k *Legend) Do(ctx context.Context) error {
	bold := color.New(color.Bold).Sprint

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Symbol"), bold("Status"), bold("Meaning"))
	for _, s := range entry.AllStatuses() {
		tbl.AddRow(printers.StatusGlyph(s), string(s), statusMeanings[s])
	}
	_, _ = fmt.Fprintln(color.Output, tbl)

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Result("a · cell in the week grid means no hours on that day")
	return nil
}
