package timeutil

import (
	"fmt"
	"time"
)

const (
	// DayKeyLayout is the canonical day-key format used for persisted,
	// day-scoped records (overrides, notification markers, streak).
	DayKeyLayout = "2006-01-02"
)

// DayKey renders the local calendar date of t as a day-key string.
func DayKey(t time.Time) string {
	return t.Local().Format(DayKeyLayout)
}

// PreviousDayKey renders the local calendar date immediately before t.
func PreviousDayKey(t time.Time) string {
	return DayKey(t.Local().AddDate(0, 0, -1))
}

// DayBounds returns the local midnight starting t's day and the midnight
// starting the next day. The window is half-open: [start, end).
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return start, start.AddDate(0, 0, 1)
}

// FormatMinutes renders a minute count as a short countdown label. Below an
// hour the label stays in minutes ("45m"); at an hour and beyond it switches
// to hour-based text ("1h", "1h1m") so a 61 minute countdown never reads as
// "61m".
func FormatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	h := m / 60
	rem := m % 60
	if rem == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, rem)
}

// FormatClock renders the local wall-clock time of t, e.g. "09:45".
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04")
}
