package app

import (
	"context"
	"errors"
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"tableflip.dev/nextup/pkg/store"
	"tableflip.dev/nextup/pkg/timeutil"
)

var day = time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func raw(id string, startH, startM, endH, endM int) *calendar.Event {
	return &calendar.Event{
		Id:      id,
		Summary: id,
		Start:   &calendar.EventDateTime{DateTime: at(startH, startM).Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: at(endH, endM).Format(time.RFC3339)},
	}
}

type fakeFetcher struct {
	events []*calendar.Event
	err    error
	calls  int
}

func (f *fakeFetcher) DayEvents(ctx context.Context, dayStart, dayEnd time.Time) ([]*calendar.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func newService(t *testing.T, fetcher *fakeFetcher) *Service {
	t.Helper()
	p, err := store.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return &Service{Calendar: fetcher, Persistence: p}
}

func morningFetcher() *fakeFetcher {
	return &fakeFetcher{events: []*calendar.Event{
		raw("a", 9, 0, 9, 30),
		raw("b", 9, 30, 10, 15),
		raw("c", 11, 0, 11, 30),
	}}
}

func TestFetchDayNormalizes(t *testing.T) {
	fetcher := morningFetcher()
	fetcher.events = append(fetcher.events, &calendar.Event{
		Id:    "allday",
		Start: &calendar.EventDateTime{Date: "2025-11-05"},
		End:   &calendar.EventDateTime{Date: "2025-11-06"},
	})
	svc := newService(t, fetcher)

	sess, err := svc.FetchDay(context.Background(), at(8, 0))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(sess.Events) != 3 {
		t.Fatalf("expected 3 timed events, got %d", len(sess.Events))
	}
}

func TestFetchDayPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	svc := newService(t, &fakeFetcher{err: boom})
	if _, err := svc.FetchDay(context.Background(), at(8, 0)); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestSnapshotPipeline(t *testing.T) {
	svc := newService(t, morningFetcher())
	sess, err := svc.FetchDay(context.Background(), at(9, 45))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	snap, err := svc.Snapshot(context.Background(), sess, at(9, 45))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	c := snap.Classification
	if c.Current == nil || c.Current.ID != "b" {
		t.Fatalf("expected current b, got %#v", c.Current)
	}
	if c.Next == nil || c.Next.ID != "c" {
		t.Fatalf("expected next c, got %#v", c.Next)
	}
	if snap.Badge != "30m" {
		t.Fatalf("expected badge 30m, got %q", snap.Badge)
	}
}

func TestMarkCompleteChangesNextSnapshot(t *testing.T) {
	svc := newService(t, morningFetcher())
	sess, _ := svc.FetchDay(context.Background(), at(9, 45))

	if err := svc.MarkComplete(context.Background(), at(9, 45), "b"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	snap, err := svc.Snapshot(context.Background(), sess, at(9, 46))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Classification.Current != nil {
		t.Fatalf("expected no current after completion, got %s", snap.Classification.Current.ID)
	}
	if len(snap.Classification.Past) != 2 {
		t.Fatalf("expected 2 past events, got %d", len(snap.Classification.Past))
	}

	// The session itself is untouched; snapshots derive, never mutate.
	if sess.Events[1].ManuallyCompleted {
		t.Fatalf("session events must stay immutable")
	}

	if err := svc.UndoComplete(context.Background(), at(9, 47), "b"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	snap, _ = svc.Snapshot(context.Background(), sess, at(9, 47))
	if snap.Classification.Current == nil || snap.Classification.Current.ID != "b" {
		t.Fatalf("expected b current again after undo")
	}
}

func TestTwoContextsConverge(t *testing.T) {
	// Two services sharing the store (interactive + watch) must derive the
	// same classification from the same inputs.
	p, err := store.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	ui := &Service{Calendar: morningFetcher(), Persistence: p}
	bg := &Service{Calendar: morningFetcher(), Persistence: p}

	if err := ui.MarkComplete(context.Background(), at(9, 45), "b"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	uiSess, _ := ui.FetchDay(context.Background(), at(9, 46))
	bgSess, _ := bg.FetchDay(context.Background(), at(9, 46))

	uiSnap, _ := ui.Snapshot(context.Background(), uiSess, at(9, 46))
	bgSnap, _ := bg.Snapshot(context.Background(), bgSess, at(9, 46))

	if uiSnap.Badge != bgSnap.Badge {
		t.Fatalf("contexts disagree: %q vs %q", uiSnap.Badge, bgSnap.Badge)
	}
	if (uiSnap.Classification.Current == nil) != (bgSnap.Classification.Current == nil) {
		t.Fatalf("contexts disagree on current event")
	}
}

func TestUpdateStreakOncePerDay(t *testing.T) {
	svc := newService(t, morningFetcher())

	count, err := svc.UpdateStreak(at(9, 0))
	if err != nil || count != 1 {
		t.Fatalf("expected first count 1, got %d (%v)", count, err)
	}
	count, err = svc.UpdateStreak(at(17, 0))
	if err != nil || count != 1 {
		t.Fatalf("same day must not increment, got %d (%v)", count, err)
	}
	count, err = svc.UpdateStreak(day.AddDate(0, 0, 1).Add(9 * time.Hour))
	if err != nil || count != 2 {
		t.Fatalf("next day should increment to 2, got %d (%v)", count, err)
	}
}

func TestDueNotificationFiresOnce(t *testing.T) {
	svc := newService(t, morningFetcher())
	sess, _ := svc.FetchDay(context.Background(), at(10, 30))

	// 30 minutes out: nothing due.
	snap, _ := svc.Snapshot(context.Background(), sess, at(10, 30))
	ev, err := svc.DueNotification(snap, at(10, 30))
	if err != nil || ev != nil {
		t.Fatalf("expected nothing due at 30m, got %v (%v)", ev, err)
	}

	// A coarse tick jumped from 7m out to 4m out; the reminder still fires.
	snap, _ = svc.Snapshot(context.Background(), sess, at(10, 56))
	ev, err = svc.DueNotification(snap, at(10, 56))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev == nil || ev.ID != "c" {
		t.Fatalf("expected reminder for c, got %#v", ev)
	}

	// Subsequent ticks inside the window stay silent.
	for _, m := range []int{57, 58, 59} {
		snap, _ = svc.Snapshot(context.Background(), sess, at(10, m))
		ev, err = svc.DueNotification(snap, at(10, m))
		if err != nil || ev != nil {
			t.Fatalf("minute %d: reminder fired twice: %v (%v)", m, ev, err)
		}
	}
}

func TestDueNotificationRespectsDayKey(t *testing.T) {
	svc := newService(t, morningFetcher())
	key := timeutil.DayKey(at(10, 56))
	if err := svc.Persistence.MarkNotified(key, "c"); err != nil {
		t.Fatalf("seed marker: %v", err)
	}

	sess, _ := svc.FetchDay(context.Background(), at(10, 56))
	snap, _ := svc.Snapshot(context.Background(), sess, at(10, 56))
	ev, err := svc.DueNotification(snap, at(10, 56))
	if err != nil || ev != nil {
		t.Fatalf("persisted marker must suppress the reminder, got %v (%v)", ev, err)
	}
}
