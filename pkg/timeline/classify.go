// Package timeline turns a day's canonical events, the completion override
// set, and a wall-clock instant into the now/next/upcoming/past
// classification and its derived presentation values. Everything here is a
// pure function: callers re-run the full pipeline on every tick and no state
// is carried between calls.
package timeline

import (
	"time"

	"tableflip.dev/nextup/pkg/event"
)

// Classification partitions a day's events relative to a single instant.
// Each input event lands in exactly one bucket.
type Classification struct {
	Current  *event.Event
	Next     *event.Event
	Upcoming []event.Event
	Past     []event.Event
}

// Classify recomputes the full classification from scratch.
//
// Current is the first event (input order, which the provider guarantees is
// start-ascending) with start <= now < end; when several events overlap now
// the earliest-starting one wins the tie-break and the rest lead the
// Upcoming list, since they are neither over nor strictly in the future.
// Next is the first event starting after now; Upcoming holds the remaining
// future events; Past holds everything with end <= now.
func Classify(events []event.Event, now time.Time) Classification {
	var c Classification
	var inProgress, future []event.Event

	for _, e := range events {
		switch {
		case !e.End.After(now):
			c.Past = append(c.Past, e)
		case e.Start.After(now):
			future = append(future, e)
		default:
			inProgress = append(inProgress, e)
		}
	}

	if len(inProgress) > 0 {
		cur := inProgress[0]
		c.Current = &cur
		c.Upcoming = append(c.Upcoming, inProgress[1:]...)
	}
	if len(future) > 0 {
		next := future[0]
		c.Next = &next
		c.Upcoming = append(c.Upcoming, future[1:]...)
	}
	return c
}
