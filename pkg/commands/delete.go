package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/commands/options"
	"tableflip.dev/punch/pkg/entry"
	"tableflip.dev/punch/pkg/runner/remove"
	"tableflip.dev/punch/pkg/timesheet"
)

func addDelete(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}
	io := &options.IDOptions{}
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "delete entries, or a whole calendar row",
		Example: `
punch delete --id 42
punch delete --project atlas --task development
punch delete --team platform -t oncall --nonbillable --week 2026-02-23
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := wo.Anchor()
			if err != nil {
				return err
			}
			rowKey, err := rowKeyFor(eo, io)
			if err != nil {
				return err
			}
			svc, err := app.Load(nil)
			if err != nil {
				return err
			}
			s := remove.Remove{
				Anchor:  anchor,
				IDs:     io.IDs,
				RowKey:  rowKey,
				Service: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddWeekArgs(cmd, wo)
	options.AddIDArgs(cmd, io)
	options.AddGroupingArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}

// rowKeyFor turns the grouping flags into a row key, or returns empty when
// the command targets individual ids.
func rowKeyFor(eo *options.EntryOptions, io *options.IDOptions) (string, error) {
	group := eo.Team
	if group == "" {
		group = eo.Project
	}
	if group == "" && eo.Task == "" {
		return "", nil
	}
	if len(io.IDs) > 0 {
		return "", errors.New("pass either --id or a row grouping, not both")
	}
	if group == "" || eo.Task == "" {
		return "", errors.New("deleting a row needs both a project or team and a --task")
	}
	billable := entry.Billable
	if eo.NonBillable {
		billable = entry.NonBillable
	}
	return timesheet.RowKey(group, eo.Task, billable), nil
}
