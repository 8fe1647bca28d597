package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/commands/options"
	"tableflip.dev/punch/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive week grid",
		Example: `
punch ui
punch ui --week 2026-02-23
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
			i := ui.UI{Anchor: anchor, Service: svc}
			return i.Do(context.Background())
		},
	}

	options.AddWeekArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
