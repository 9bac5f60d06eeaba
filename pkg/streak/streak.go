// Package streak implements the day-continuity counter. The counter is keyed
// only by calendar date and is independent of event data.
package streak

import (
	"time"

	"tableflip.dev/nextup/pkg/timeutil"
)

// Record is the persisted streak singleton.
type Record struct {
	Count int    `json:"count"`
	Day   string `json:"day"`
}

// IsZero reports whether the record has never been seeded.
func (r Record) IsZero() bool {
	return r.Count == 0 && r.Day == ""
}

// Update derives today's record from the previously persisted one: the same
// day returns the record unchanged (at most one increment per day-key),
// yesterday extends the streak by exactly one, and any gap (including a
// never-seen record) reseeds the count at 1.
func Update(prev Record, today time.Time) Record {
	key := timeutil.DayKey(today)
	if prev.Day == key && prev.Count >= 1 {
		return prev
	}
	if prev.Day == timeutil.PreviousDayKey(today) && prev.Count >= 1 {
		return Record{Count: prev.Count + 1, Day: key}
	}
	return Record{Count: 1, Day: key}
}
