// Package remove provides the runner for deleting entries or whole
// calendar rows.
package remove

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/printers"
)

// Remove deletes the named entries, or every entry under a calendar row
// when RowKey is set. Pending and approved entries are skipped silently.
type Remove struct {
	Anchor  time.Time
	IDs     []string
	RowKey  string
	Service *app.Service
}

// Do loads the week and deletes the targets.
func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	if err := n.Service.LoadWeek(ctx, n.Anchor); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	var (
		count int
		err   error
	)
	if n.RowKey != "" {
		count, err = n.Service.DeleteRow(ctx, n.RowKey)
	} else {
		if len(n.IDs) == 0 {
			return errors.New("nothing to delete, pass entry ids or --row")
		}
		for _, id := range n.IDs {
			n.Service.Store.SetSelected(id, true)
		}
		count, err = n.Service.DeleteSelected(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println("")
	switch count {
	case 1:
		pp.Result("deleted 1 entry")
	default:
		pp.Result("deleted %d entries", count)
	}
	return nil
}
