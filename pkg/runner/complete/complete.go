package complete

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/nextup/pkg/app"
	"tableflip.dev/nextup/pkg/printers"
)

type Complete struct {
	ID      string
	ShowID  bool
	Service *app.Service
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if n.ID == "" {
		return errors.New("can not complete, no event id")
	}
	now := time.Now()

	if err := n.Service.MarkComplete(ctx, now, n.ID); err != nil {
		return err
	}
	fmt.Printf("completed %s\n", n.ID)

	// Best effort: show the reconciled timeline so the effect is visible
	// right away. The override is already persisted, so a fetch failure
	// here is not fatal.
	sess, err := n.Service.FetchDay(ctx, now)
	if err != nil {
		return nil
	}
	snap, err := n.Service.Snapshot(ctx, sess, now)
	if err != nil {
		return nil
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.Timeline(snap.Classification, now)
	return nil
}
