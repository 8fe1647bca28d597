package timesheet

import (
	"time"

	"tableflip.dev/punch/pkg/entry"
)

// Patch is a partial update for a single entry. Nil fields are untouched.
type Patch struct {
	Date        *time.Time
	Project     *string
	Team        *string
	Task        *string
	Description *string
	Hours       *float64
	Billable    *entry.BillableType
	Status      *entry.Status
}

// KeyAffecting reports whether applying the patch can move the entry between
// calendar rows.
func (p Patch) KeyAffecting() bool {
	return p.Project != nil || p.Team != nil || p.Task != nil || p.Billable != nil
}

// Structural reports whether the patch reassigns the entry's grouping.
// Structural changes bypass the debounced sync path because downstream task
// lookups depend on the server seeing the new grouping first.
func (p Patch) Structural() bool {
	return p.Project != nil || p.Team != nil || p.Task != nil
}

// Fields flattens the patch into wire field names for the sync batch.
func (p Patch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Date != nil {
		fields["date"] = p.Date.Format("2006-01-02")
	}
	if p.Project != nil {
		fields["project"] = *p.Project
	}
	if p.Team != nil {
		fields["team"] = *p.Team
	}
	if p.Task != nil {
		fields["task"] = *p.Task
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Hours != nil {
		fields["hours"] = *p.Hours
	}
	if p.Billable != nil {
		fields["billable"] = string(*p.Billable)
	}
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	return fields
}

func (p Patch) apply(e *entry.Entry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Project != nil {
		e.Project = *p.Project
	}
	if p.Team != nil {
		e.Team = *p.Team
	}
	if p.Task != nil {
		e.Task = *p.Task
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Hours != nil {
		e.Hours = *p.Hours
	}
	if p.Billable != nil {
		e.Billable = *p.Billable
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}
