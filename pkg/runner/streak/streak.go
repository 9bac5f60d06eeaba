package streak

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/nextup/pkg/printers"
	"tableflip.dev/nextup/pkg/store"
)

type Streak struct {
	Persistence store.Persistence
}

func (n *Streak) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get streak, no persistence")
	}

	rec, err := n.Persistence.Streak()
	if err != nil {
		return err
	}
	if rec.IsZero() {
		fmt.Println("no streak yet, run `nextup today` to start one")
		return nil
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Streak(rec.Count)
	fmt.Printf("last counted on %s\n", rec.Day)
	return nil
}
