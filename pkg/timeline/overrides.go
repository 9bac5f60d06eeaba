package timeline

import (
	"sort"
	"time"

	"tableflip.dev/nextup/pkg/event"
)

// Set holds the event IDs the user manually completed for one day-key.
type Set map[string]struct{}

// NewSet builds a Set from a persisted ID list.
func NewSet(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether the event ID is marked complete.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the member IDs in sorted order, for stable persistence.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyOverrides derives the effective event list: any event the user marked
// complete whose end still lies in the future is returned with its end
// clamped to now and ManuallyCompleted set, which places it in the past
// bucket on the next Classify. Events already over are returned unchanged,
// so a stale override can never resurrect or reshape a past event.
//
// The input slice is never mutated; callers may re-apply on every tick.
// Re-application only tightens or holds: once end <= now the clamp branch no
// longer fires, so a second pass over the same output is the identity.
func ApplyOverrides(events []event.Event, overrides Set, now time.Time) []event.Event {
	out := make([]event.Event, len(events))
	copy(out, events)
	if len(overrides) == 0 {
		return out
	}
	for i := range out {
		if !overrides.Has(out[i].ID) {
			continue
		}
		if out[i].End.After(now) {
			out[i].End = now
			out[i].ManuallyCompleted = true
		}
	}
	return out
}
