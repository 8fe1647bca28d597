// Package ui provides the runner that opens the interactive week grid.
package ui

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/tui/weekview"
)

// UI opens the full-screen week grid anchored at the given date.
type UI struct {
	Anchor  time.Time
	Service *app.Service
}

// Do loads the week and hands the terminal to the grid.
func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open the ui, no service")
	}
	// A failed load still opens the grid on cached data; the view
	// surfaces the error in its status line on the next reload.
	_ = d.Service.LoadWeek(ctx, d.Anchor)
	return weekview.Run(d.Service)
}
