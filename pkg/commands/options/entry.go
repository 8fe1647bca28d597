package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/punch/pkg/entry"
	"tableflip.dev/punch/pkg/timeutil"
)

// EntryOptions captures the fields that describe a new or edited entry.
type EntryOptions struct {
	Date        string
	Project     string
	Team        string
	Task        string
	Description string
	Hours       string
	NonBillable bool
	Row         bool
}

// AddGroupingArgs wires only the flags that name a calendar row.
func AddGroupingArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Project, "project", "p", "",
		"Project to log against.")
	cmd.Flags().StringVar(&o.Team, "team", "",
		"Team to log against. Wins over --project when both are set.")
	cmd.Flags().StringVarP(&o.Task, "task", "t", "",
		"Task within the project or team.")
	cmd.Flags().BoolVar(&o.NonBillable, "nonbillable", false,
		"Mark the entry non-billable.")
}

// AddEntryArgs wires the entry description flags on the provided command.
func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	AddGroupingArgs(cmd, o)
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		"Day to log against, as YYYY-MM-DD. Defaults to today.")
	cmd.Flags().StringVarP(&o.Description, "message", "m", "",
		"Free-form note on the entry.")
	cmd.Flags().StringVar(&o.Hours, "hours", "",
		`Hours to log, as a number ("1.5") or a duration ("1h30m", "90min").`)
	cmd.Flags().BoolVar(&o.Row, "row", false,
		"Only start an empty calendar row, do not log hours.")
}

// Day resolves the date flag. An empty flag means today.
func (o *EntryOptions) Day() (time.Time, error) {
	if o.Date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(dateLayout, o.Date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad --date %q, want YYYY-MM-DD", o.Date)
	}
	return t, nil
}

// HoursValue resolves the hours flag to fractional hours.
func (o *EntryOptions) HoursValue() (float64, error) {
	return timeutil.ParseHours(o.Hours)
}

// Billable resolves the flag to the entry's billing type.
func (o *EntryOptions) Billable() entry.BillableType {
	if o.NonBillable {
		return entry.NonBillable
	}
	return entry.Billable
}
