package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/commands/options"
	"tableflip.dev/punch/pkg/runner/submit"
)

func addSubmit(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}
	io := &options.IDOptions{}
	wholeWeek := false

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "send entries to review",
		Example: `
punch submit --all
punch submit --all --week 2026-02-23
punch submit --id 42 --id 43
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
			s := submit.Submit{
				Anchor:  anchor,
				Week:    wholeWeek,
				IDs:     io.IDs,
				Service: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddWeekArgs(cmd, wo)
	options.AddIDArgs(cmd, io)
	cmd.Flags().BoolVar(&wholeWeek, "all", false, "Submit every eligible entry in the week.")

	topLevel.AddCommand(cmd)
}
