package timeline

import (
	"math"
	"time"

	"tableflip.dev/nextup/pkg/event"
	"tableflip.dev/nextup/pkg/timeutil"
)

const (
	// NextSoonMinutes is how close the next event's start must be before the
	// badge switches to its countdown.
	NextSoonMinutes = 15

	// NotifyLeadMinutes is the reminder lead time; the one-shot notification
	// fires when the countdown to the next start first lands in
	// [0, NotifyLeadMinutes].
	NotifyLeadMinutes = 5

	// Canonical waking-day window for day progress.
	dayWindowStartHour = 6
	dayWindowEndHour   = 22
)

// Progress returns how far through the event now is, in percent, clamped to
// [0, 100]. A zero-length event (possible after an override clamp lands
// exactly on the start instant) reads as fully elapsed once now has reached
// its start.
func Progress(e event.Event, now time.Time) float64 {
	total := e.End.Sub(e.Start)
	if total <= 0 {
		if now.Before(e.Start) {
			return 0
		}
		return 100
	}
	p := float64(now.Sub(e.Start)) / float64(total) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// MinutesUntil returns the whole minutes from now to t, rounded, never
// negative.
func MinutesUntil(t time.Time, now time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}

// MinutesLeft returns the whole minutes until the event ends.
func MinutesLeft(e event.Event, now time.Time) int {
	return MinutesUntil(e.End, now)
}

// BadgeText derives the short status label: minutes left in the current
// event, else the countdown to the next event once it is within
// NextSoonMinutes, else empty.
func BadgeText(c Classification, now time.Time) string {
	if c.Current != nil {
		return timeutil.FormatMinutes(MinutesLeft(*c.Current, now))
	}
	if c.Next != nil {
		if m := MinutesUntil(c.Next.Start, now); m <= NextSoonMinutes {
			return timeutil.FormatMinutes(m)
		}
	}
	return ""
}

// DayProgress returns how far through the waking-day window (06:00-22:00
// local) now is, in percent, clamped to [0, 100].
func DayProgress(now time.Time) float64 {
	local := now.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), dayWindowStartHour, 0, 0, 0, local.Location())
	end := time.Date(local.Year(), local.Month(), local.Day(), dayWindowEndHour, 0, 0, 0, local.Location())
	if !local.After(start) {
		return 0
	}
	if !local.Before(end) {
		return 100
	}
	return float64(local.Sub(start)) / float64(end.Sub(start)) * 100
}
