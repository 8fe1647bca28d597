package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/commands/options"
	"tableflip.dev/punch/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}
	io := &options.IDOptions{}
	flat := false

	cmd := &cobra.Command{
		Use:   "get",
		Short: "show a week of the timesheet",
		Example: `
punch get
punch get --week 2026-02-23
punch get --flat --show-id
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := wo.Anchor()
			if err != nil {
				return err
			}
			svc, err := app.Load(nil)
			if err != nil {
				return err
			}
			s := get.Get{
				Anchor:  anchor,
				ShowID:  io.ShowID,
				Flat:    flat,
				Service: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddWeekArgs(cmd, wo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&flat, "flat", false, "List entries one per line instead of the calendar grid.")

	topLevel.AddCommand(cmd)
}
