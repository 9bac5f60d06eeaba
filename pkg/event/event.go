// Package event defines the canonical timed calendar event and the
// normalization of raw provider payloads into it.
package event

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// PlaceholderTitle is used when the provider event carries no summary.
const PlaceholderTitle = "(no title)"

// Event is a normalized, timed calendar entry. Events are rebuilt from the
// provider on every fetch cycle and are never persisted; Start precedes End
// for anything the normalizer lets through.
type Event struct {
	ID                string
	Title             string
	Start             time.Time
	End               time.Time
	ManuallyCompleted bool
}

// Duration returns the scheduled length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Normalize converts a raw provider event into an Event. The second return
// is false when the event should be skipped: all-day entries (date without a
// time-of-day), missing identifiers, unparsable timestamps, or a start that
// does not precede its end. Malformed input is never an error.
func Normalize(raw *calendar.Event) (Event, bool) {
	if raw == nil || raw.Id == "" {
		return Event{}, false
	}
	if raw.Start == nil || raw.End == nil {
		return Event{}, false
	}
	// All-day events only carry a Date, never a DateTime.
	if raw.Start.DateTime == "" || raw.End.DateTime == "" {
		return Event{}, false
	}
	start, err := time.Parse(time.RFC3339, raw.Start.DateTime)
	if err != nil {
		return Event{}, false
	}
	end, err := time.Parse(time.RFC3339, raw.End.DateTime)
	if err != nil {
		return Event{}, false
	}
	if !start.Before(end) {
		return Event{}, false
	}

	title := raw.Summary
	if title == "" {
		title = PlaceholderTitle
	}

	return Event{
		ID:    raw.Id,
		Title: title,
		Start: start,
		End:   end,
	}, true
}

// NormalizeAll normalizes a provider batch, dropping skipped entries and
// preserving the provider's start-ascending order.
func NormalizeAll(raw []*calendar.Event) []Event {
	events := make([]Event, 0, len(raw))
	for _, r := range raw {
		if e, ok := Normalize(r); ok {
			events = append(events, e)
		}
	}
	return events
}
