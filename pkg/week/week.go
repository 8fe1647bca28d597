// Package week provides the pure date arithmetic behind the calendar view:
// anchoring an arbitrary date to its week, stepping between weeks, and
// expanding an anchor into the seven day descriptors the grid renders.
package week

import "time"

// Day describes one column of the week grid.
type Day struct {
	Date    time.Time
	Weekday string // short day name, e.g. "Mon"
	Number  int    // day of month
	Month   string // short month name, e.g. "Feb"
}

// Start returns the first day (Sunday) of the week containing t, truncated
// to the start of the day in t's location. Midnight is rebuilt via time.Date
// rather than subtracting hours so DST transitions do not skew the anchor.
func Start(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Previous returns the anchor one week back.
func Previous(anchor time.Time) time.Time {
	return Start(anchor.AddDate(0, 0, -7))
}

// Next returns the anchor one week forward.
func Next(anchor time.Time) time.Time {
	return Start(anchor.AddDate(0, 0, 7))
}

// Window is a seven day span anchored at a week start.
type Window struct {
	Anchor time.Time
}

// NewWindow normalizes t to its week start and returns the window.
func NewWindow(t time.Time) Window {
	return Window{Anchor: Start(t)}
}

// Days expands the window into exactly seven consecutive day descriptors.
func (w Window) Days() []Day {
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := w.Anchor.AddDate(0, 0, i)
		days = append(days, Day{
			Date:    d,
			Weekday: d.Format("Mon"),
			Number:  d.Day(),
			Month:   d.Format("Jan"),
		})
	}
	return days
}

// End returns the last instant's day (the Saturday) of the window.
func (w Window) End() time.Time {
	return w.Anchor.AddDate(0, 0, 6)
}

// Contains reports whether t falls on one of the window's seven days.
func (w Window) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.Anchor.Location())
	return !day.Before(w.Anchor) && !day.After(w.End())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
