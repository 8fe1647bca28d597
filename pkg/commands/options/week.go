// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// WeekOptions selects the week a command operates on.
type WeekOptions struct {
	Week string
}

// AddWeekArgs wires the week selection flag on the provided command.
func AddWeekArgs(cmd *cobra.Command, o *WeekOptions) {
	cmd.Flags().StringVarP(&o.Week, "week", "w", "",
		"Any date inside the week to show, as YYYY-MM-DD. Defaults to the current week.")
}

// Anchor resolves the flag to a date. An empty flag means today.
func (o *WeekOptions) Anchor() (time.Time, error) {
	if o.Week == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(dateLayout, o.Week, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad --week date %q, want YYYY-MM-DD", o.Week)
	}
	return t, nil
}
