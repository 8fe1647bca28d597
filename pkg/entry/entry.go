// Package entry defines the timesheet entry model shared by the store,
// the sync engine, and the UI layers.
package entry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one loggable unit of work: hours against a project-or-team and
// task on a single calendar day.
type Entry struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	Project     string       `json:"project,omitempty"`
	Team        string       `json:"team,omitempty"`
	Task        string       `json:"task,omitempty"`
	Description string       `json:"description,omitempty"`
	Hours       float64      `json:"hours"`
	Billable    BillableType `json:"billable,omitempty"`
	Status      Status       `json:"status,omitempty"`

	// Selected is a transient UI flag and never persisted.
	Selected bool `json:"-"`
}

// New creates a draft entry with a client-generated ID. The server assigns
// the durable ID on first successful create; until then the UUID keeps the
// row addressable locally.
func New(date time.Time, project, team, task string) *Entry {
	return &Entry{
		ID:       uuid.NewString(),
		Date:     date,
		Project:  project,
		Team:     team,
		Task:     task,
		Billable: Billable,
		Status:   StatusDraft,
	}
}

// GroupRef resolves the project-or-team reference. Team wins when both are
// set; an entry belongs to at most one of the two.
func (e *Entry) GroupRef() string {
	if t := strings.TrimSpace(e.Team); t != "" {
		return t
	}
	return strings.TrimSpace(e.Project)
}

// Headless reports whether the entry lacks the grouping fields the calendar
// needs. Headless entries live only in the flat store.
func (e *Entry) Headless() bool {
	return e.GroupRef() == "" || strings.TrimSpace(e.Task) == ""
}

// Editable reports whether the owning user may change or delete the entry.
func (e *Entry) Editable() bool {
	return e.Status.Editable()
}

// Submittable reports whether the entry qualifies for submission: editable,
// non-zero hours, and a complete grouping.
func (e *Entry) Submittable() bool {
	return e.Editable() && e.Hours > 0 && !e.Headless()
}

// Clone returns a deep copy so callers can hand entries across layers
// without sharing mutable state.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}
