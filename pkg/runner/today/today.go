package today

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosuri/uitable"

	"tableflip.dev/nextup/pkg/app"
	"tableflip.dev/nextup/pkg/event"
	"tableflip.dev/nextup/pkg/gcal"
	"tableflip.dev/nextup/pkg/printers"
	"tableflip.dev/nextup/pkg/timeline"
)

type Today struct {
	ShowID  bool
	Table   bool
	Service *app.Service
}

func (n *Today) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get today, no service")
	}
	now := time.Now()

	sess, err := n.Service.FetchDay(ctx, now)
	if err != nil {
		if gcal.IsAuth(err) {
			return fmt.Errorf("not signed in, run `nextup auth` first: %w", err)
		}
		return err
	}

	snap, err := n.Service.Snapshot(ctx, sess, now)
	if err != nil {
		return err
	}

	count, err := n.Service.UpdateStreak(now)
	if err != nil {
		return err
	}

	fmt.Println("")
	if n.Table {
		n.table(snap)
	} else {
		pp := printers.PrettyPrint{ShowID: n.ShowID}
		pp.Timeline(snap.Classification, now)
		pp.DayProgress(snap.DayProgress)
		pp.Streak(count)
	}

	return nil
}

func (n *Today) table(snap app.Snapshot) {
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("WHEN", "WHAT", "STATE", "DETAIL")

	c := snap.Classification
	if c.Current != nil {
		table.AddRow(span(*c.Current), c.Current.Title, "current",
			fmt.Sprintf("%.0f%%, %dm left",
				timeline.Progress(*c.Current, snap.Now),
				timeline.MinutesLeft(*c.Current, snap.Now)))
	}
	if c.Next != nil {
		table.AddRow(span(*c.Next), c.Next.Title, "next",
			fmt.Sprintf("in %dm", timeline.MinutesUntil(c.Next.Start, snap.Now)))
	}
	for _, e := range c.Upcoming {
		table.AddRow(span(e), e.Title, "upcoming", "")
	}
	for _, e := range c.Past {
		state := "done"
		if e.ManuallyCompleted {
			state = "done*"
		}
		table.AddRow(span(e), e.Title, state, "")
	}

	fmt.Println(table)
}

func span(e event.Event) string {
	return e.Start.Local().Format("15:04") + "-" + e.End.Local().Format("15:04")
}
