package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/punch/pkg/runner/legend"
)

func addLegend(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "legend",
		Short: "explain the symbols in the output",
		Example: `
punch legend
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := &legend.Legend{}
			return k.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
