package app

import (
	"tableflip.dev/punch/pkg/timesheet"
	"tableflip.dev/punch/pkg/week"
)

// RowSummary is one calendar row with its hours spread over the window.
type RowSummary struct {
	Row      *timesheet.Row
	DayHours [7]float64
	Total    float64
}

// WeekSummary aggregates the active window for rendering: one line per
// calendar row, hours per day, and the running totals.
type WeekSummary struct {
	Window    week.Window
	Rows      []RowSummary
	DayTotals [7]float64
	Total     float64
}

// Summarize folds the store's current state into a week summary. Headless
// entries carry hours that count toward the day totals but render no row.
func (s *Service) Summarize() WeekSummary {
	sum := WeekSummary{Window: s.Window}
	days := s.Window.Days()

	dayIndex := func(rowEntry *RowSummary, id string) {
		e, ok := s.Store.Get(id)
		if !ok {
			return
		}
		for i, d := range days {
			if week.SameDay(e.Date, d.Date) {
				rowEntry.DayHours[i] += e.Hours
				rowEntry.Total += e.Hours
				sum.DayTotals[i] += e.Hours
				sum.Total += e.Hours
				return
			}
		}
	}

	for _, r := range s.Store.Rows() {
		rs := RowSummary{Row: r}
		for _, id := range r.Members {
			dayIndex(&rs, id)
		}
		sum.Rows = append(sum.Rows, rs)
	}

	for _, e := range s.Store.Entries() {
		if !e.Headless() {
			continue
		}
		for i, d := range days {
			if week.SameDay(e.Date, d.Date) {
				sum.DayTotals[i] += e.Hours
				sum.Total += e.Hours
				break
			}
		}
	}
	return sum
}
