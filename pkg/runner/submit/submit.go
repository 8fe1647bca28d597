// Package submit provides the runner for sending entries to review.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/printers"
)

// Submit transitions entries to pending review. With Week set the whole
// active week goes; otherwise the entries named by IDs.
type Submit struct {
	Anchor  time.Time
	Week    bool
	IDs     []string
	Service *app.Service
}

// Do loads the week, selects the targets, and submits. Entries that do not
// qualify (zero hours, missing grouping, already locked) are skipped
// silently; only the transitioned count is reported.
func (n *Submit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not submit, no service")
	}
	if err := n.Service.LoadWeek(ctx, n.Anchor); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	var (
		count int
		err   error
	)
	if n.Week {
		count, err = n.Service.SubmitWeek(ctx)
	} else {
		if len(n.IDs) == 0 {
			return errors.New("nothing to submit, pass entry ids or --week")
		}
		for _, id := range n.IDs {
			n.Service.Store.SetSelected(id, true)
		}
		count, err = n.Service.SubmitSelected(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println("")
	switch count {
	case 1:
		pp.Result("submitted 1 entry")
	default:
		pp.Result("submitted %d entries", count)
	}
	return nil
}
