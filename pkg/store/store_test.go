package store

import (
	"testing"

	"tableflip.dev/nextup/pkg/streak"
)

const day = "2025-11-05"

func newStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return p
}

func TestOverridesAbsentDayIsEmpty(t *testing.T) {
	p := newStore(t)
	set, err := p.Overrides(day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %#v", set)
	}
}

func TestMarkCompleteRoundTrip(t *testing.T) {
	p := newStore(t)

	if err := p.MarkComplete(day, "evt-1"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := p.MarkComplete(day, "evt-2"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	set, err := p.Overrides(day)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set) != 2 || !set.Has("evt-1") || !set.Has("evt-2") {
		t.Fatalf("unexpected set: %#v", set)
	}

	// A different day-key sees nothing; rollover is simply a new key.
	other, err := p.Overrides("2025-11-06")
	if err != nil {
		t.Fatalf("load other day: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("day keys must be isolated, got %#v", other)
	}
}

func TestMarkCompleteIdempotent(t *testing.T) {
	p := newStore(t)
	for i := 0; i < 3; i++ {
		if err := p.MarkComplete(day, "evt-1"); err != nil {
			t.Fatalf("mark %d: %v", i, err)
		}
	}
	set, _ := p.Overrides(day)
	if len(set) != 1 {
		t.Fatalf("expected a single id, got %#v", set)
	}
}

func TestUndoComplete(t *testing.T) {
	p := newStore(t)
	if err := p.MarkComplete(day, "evt-1"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := p.UndoComplete(day, "evt-1"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	// Undo of an absent id is a no-op, including on a day never written.
	if err := p.UndoComplete(day, "evt-1"); err != nil {
		t.Fatalf("repeat undo: %v", err)
	}
	if err := p.UndoComplete("2025-11-06", "evt-9"); err != nil {
		t.Fatalf("undo on empty day: %v", err)
	}
	set, _ := p.Overrides(day)
	if len(set) != 0 {
		t.Fatalf("expected empty set after undo, got %#v", set)
	}
}

func TestMarkRequiresID(t *testing.T) {
	p := newStore(t)
	if err := p.MarkComplete(day, ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestStreakRoundTrip(t *testing.T) {
	p := newStore(t)

	rec, err := p.Streak()
	if err != nil {
		t.Fatalf("read fresh streak: %v", err)
	}
	if !rec.IsZero() {
		t.Fatalf("expected zero record, got %#v", rec)
	}

	want := streak.Record{Count: 4, Day: day}
	if err := p.SaveStreak(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := p.Streak()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestNotifiedMarkers(t *testing.T) {
	p := newStore(t)

	seen, err := p.Notified(day, "evt-1")
	if err != nil || seen {
		t.Fatalf("fresh marker should be unseen: %v %v", seen, err)
	}

	if err := p.MarkNotified(day, "evt-1"); err != nil {
		t.Fatalf("mark notified: %v", err)
	}
	if err := p.MarkNotified(day, "evt-1"); err != nil {
		t.Fatalf("repeat mark notified: %v", err)
	}

	seen, err = p.Notified(day, "evt-1")
	if err != nil || !seen {
		t.Fatalf("expected marker to persist: %v %v", seen, err)
	}

	// Markers are day-scoped like overrides.
	seen, _ = p.Notified("2025-11-06", "evt-1")
	if seen {
		t.Fatalf("marker leaked across day keys")
	}
}
