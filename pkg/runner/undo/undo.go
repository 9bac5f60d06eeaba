package undo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/nextup/pkg/app"
	"tableflip.dev/nextup/pkg/printers"
)

type Undo struct {
	ID      string
	ShowID  bool
	Service *app.Service
}

func (n *Undo) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not undo, no service")
	}
	if n.ID == "" {
		return errors.New("can not undo, no event id")
	}
	now := time.Now()

	if err := n.Service.UndoComplete(ctx, now, n.ID); err != nil {
		return err
	}
	fmt.Printf("restored %s\n", n.ID)

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
