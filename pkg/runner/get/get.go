// Package get provides the runner that prints a week of the timesheet.
package get

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/printers"
)

// Get loads and prints the week containing Anchor.
type Get struct {
	Anchor  time.Time
	ShowID  bool
	Flat    bool
	Service *app.Service
}

// Do loads the week and renders it. On a transport failure the last cached
// snapshot is still rendered and the error is reported afterwards.
func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	loadErr := n.Service.LoadWeek(ctx, n.Anchor)

	if n.Flat {
		pp.Title(fmt.Sprintf("Week of %s", n.Service.Window.Anchor.Format("January 2, 2006")))
		pp.Entries(n.Service.Store.Entries()...)
	} else {
		pp.Week(n.Service.Summarize())
	}

	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "warning: showing last known data: %v\n", loadErr)
		return loadErr
	}
	return nil
}
