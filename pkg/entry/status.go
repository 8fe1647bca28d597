package entry

import (
	"fmt"
	"strings"
)

// Status tracks where an entry sits in the submission workflow.
type Status string

const (
	// StatusDraft is the default state for new or reopened entries.
	StatusDraft Status = "draft"
	// StatusPending means the entry was submitted and awaits review.
	StatusPending Status = "pending"
	// StatusApproved means the entry passed review and is locked.
	StatusApproved Status = "approved"
	// StatusRejected means review bounced the entry back to the owner.
	StatusRejected Status = "rejected"
)

// AllStatuses returns the list of supported workflow states.
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusPending,
		StatusApproved,
		StatusRejected,
	}
}

// ParseStatus converts a string to a Status or returns an error for unknown
// values. Empty and unknown inputs map to draft so wire payloads with shapes
// we do not recognize degrade to an editable entry instead of a stuck one.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return StatusDraft, nil
	}
	for _, candidate := range AllStatuses() {
		if candidate == s {
			return candidate, nil
		}
	}
	return StatusDraft, fmt.Errorf("entry: unknown status %q", raw)
}

// Editable reports whether the owning user may still change the entry.
// Pending and approved entries are read-only.
func (s Status) Editable() bool {
	return s == StatusDraft || s == "" || s == StatusRejected
}

// BillableType classifies how time for an entry is charged.
type BillableType string

const (
	// Billable hours are charged to the client.
	Billable BillableType = "billable"
	// NonBillable hours are internal.
	NonBillable BillableType = "nonbillable"
)

// ParseBillableType converts a string to a BillableType, defaulting to
// Billable for empty or unknown input.
func ParseBillableType(raw string) (BillableType, error) {
	b := BillableType(strings.ToLower(strings.TrimSpace(raw)))
	switch b {
	case "":
		return Billable, nil
	case Billable, NonBillable:
		return b, nil
	case "non-billable", "non_billable":
		return NonBillable, nil
	}
	return Billable, fmt.Errorf("entry: unknown billable type %q", raw)
}
