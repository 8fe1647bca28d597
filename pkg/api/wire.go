package api

import (
	"encoding/json"
	"strings"
	"time"

	"tableflip.dev/punch/pkg/entry"
)

// wireEntry is the loose shape the server sends. Normalization happens in
// one place so unknown or missing values default instead of leaking
// untyped data into the model.
type wireEntry struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Project     string      `json:"project"`
	Team        string      `json:"team"`
	Task        string      `json:"task"`
	Description string      `json:"description"`
	Hours       json.Number `json:"hours"`
	Billable    string      `json:"billable"`
	Status      string      `json:"status"`
}

func (w wireEntry) normalize() *entry.Entry {
	e := &entry.Entry{
		ID:          strings.TrimSpace(w.ID),
		Project:     strings.TrimSpace(w.Project),
		Team:        strings.TrimSpace(w.Team),
		Task:        strings.TrimSpace(w.Task),
		Description: w.Description,
	}
	if t, err := time.Parse(dateLayout, w.Date); err == nil {
		e.Date = t
	} else if t, err := time.Parse(time.RFC3339, w.Date); err == nil {
		e.Date = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	if h, err := w.Hours.Float64(); err == nil && h >= 0 {
		e.Hours = h
	}
	// Unknown enum values default rather than propagate.
	e.Billable, _ = entry.ParseBillableType(w.Billable)
	e.Status, _ = entry.ParseStatus(w.Status)
	return e
}

func toWire(e *entry.Entry) wireEntry {
	return wireEntry{
		ID:          e.ID,
		Date:        e.Date.Format(dateLayout),
		Project:     e.Project,
		Team:        e.Team,
		Task:        e.Task,
		Description: e.Description,
		Hours:       json.Number(formatHours(e.Hours)),
		Billable:    string(e.Billable),
		Status:      string(e.Status),
	}
}

func formatHours(h float64) string {
	b, _ := json.Marshal(h)
	return string(b)
}
