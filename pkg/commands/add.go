package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/commands/options"
	"tableflip.dev/punch/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "log hours, or start an empty calendar row",
		Example: `
punch add --project atlas --task development --hours 4
punch add --team platform -t oncall --hours 1.5 -m "pager rotation"
punch add -p atlas -i
punch add -p atlas -t development --row
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && eo.Description == "" {
				eo.Description = strings.Join(args, " ")
				return nil
			}
			if len(args) > 0 {
				return errors.New("pass the note either as arguments or --message, not both")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := eo.Day()
			if err != nil {
				return err
			}
			hours, err := eo.HoursValue()
			if err != nil {
				return err
			}
			svc, err := app.Load(nil)
			if err != nil {
				return err
			}
			s := add.Add{
				Date:        day,
				Project:     eo.Project,
				Team:        eo.Team,
				Task:        eo.Task,
				Description: eo.Description,
				Hours:       hours,
				Billable:    eo.Billable(),
				EmptyRow:    eo.Row,
				Interactive: i.Interactive,
				Service:     svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
