package timeline

import (
	"reflect"
	"testing"
)

func TestApplyOverridesClampsCurrentEvent(t *testing.T) {
	events := morning()
	now := at(9, 45)

	out := ApplyOverrides(events, NewSet([]string{"b"}), now)

	if !out[1].End.Equal(now) {
		t.Fatalf("expected end clamped to %v, got %v", now, out[1].End)
	}
	if !out[1].ManuallyCompleted {
		t.Fatalf("clamped event should be marked manually completed")
	}
	// Input slice must stay untouched.
	if !events[1].End.Equal(at(10, 15)) || events[1].ManuallyCompleted {
		t.Fatalf("input slice was mutated: %#v", events[1])
	}
}

func TestApplyOverridesReclassifies(t *testing.T) {
	events := morning()
	overrides := NewSet([]string{"b"})

	// Marked complete at 09:45; one minute later the event is past and no
	// event is current because c has not started yet.
	out := ApplyOverrides(events, overrides, at(9, 45))
	c := Classify(out, at(9, 46))

	if c.Current != nil {
		t.Fatalf("expected no current event, got %s", c.Current.ID)
	}
	if c.Next == nil || c.Next.ID != "c" {
		t.Fatalf("expected next c, got %#v", c.Next)
	}
	if len(c.Past) != 2 {
		t.Fatalf("expected a and b past, got %d", len(c.Past))
	}
}

func TestApplyOverridesIdempotent(t *testing.T) {
	events := morning()
	overrides := NewSet([]string{"a", "b"})
	now := at(9, 45)

	once := ApplyOverrides(events, overrides, now)
	twice := ApplyOverrides(once, overrides, now)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second application changed the result:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestApplyOverridesMonotonicClamp(t *testing.T) {
	events := morning()
	overrides := NewSet([]string{"a", "b", "c"})

	for _, now := range []struct{ h, m int }{{9, 10}, {9, 45}, {10, 30}, {12, 0}} {
		out := ApplyOverrides(events, overrides, at(now.h, now.m))
		for i := range out {
			if out[i].End.After(events[i].End) {
				t.Fatalf("end moved later than original for %s: %v > %v", out[i].ID, out[i].End, events[i].End)
			}
		}
	}
}

func TestApplyOverridesLeavesPastEventsAlone(t *testing.T) {
	events := morning()
	now := at(9, 45)

	// a ended at 09:30; an override for it must not alter anything.
	out := ApplyOverrides(events, NewSet([]string{"a"}), now)

	if !out[0].End.Equal(at(9, 30)) || out[0].ManuallyCompleted {
		t.Fatalf("past event was altered: %#v", out[0])
	}
}

func TestApplyOverridesLaterTickOnlyTightens(t *testing.T) {
	events := morning()
	overrides := NewSet([]string{"b"})

	first := ApplyOverrides(events, overrides, at(9, 45))
	// Next tick re-derives from the fresh provider copy with a later now;
	// the event must remain past either way.
	second := ApplyOverrides(events, overrides, at(9, 50))

	if Classify(first, at(9, 50)).Current != nil {
		t.Fatalf("first clamp should keep the event out of current")
	}
	if Classify(second, at(9, 50)).Current != nil {
		t.Fatalf("re-derived clamp should keep the event out of current")
	}
}

func TestSetRoundTrip(t *testing.T) {
	s := NewSet([]string{"b", "a", "", "b"})
	if len(s) != 2 || !s.Has("a") || !s.Has("b") || s.Has("") {
		t.Fatalf("unexpected set contents: %#v", s)
	}
	ids := s.IDs()
	if !reflect.DeepEqual(ids, []string{"a", "b"}) {
		t.Fatalf("expected sorted ids, got %v", ids)
	}
}
