// Package app wires the reconciliation pipeline behind one Service so the
// interactive UI, the one-shot commands, and the watch daemon all derive
// their view of the day from the same logic.
package app

import (
	"context"
	"errors"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"tableflip.dev/nextup/pkg/event"
	"tableflip.dev/nextup/pkg/store"
	"tableflip.dev/nextup/pkg/streak"
	"tableflip.dev/nextup/pkg/timeline"
	"tableflip.dev/nextup/pkg/timeutil"
)

// Fetcher lists one day of raw provider events.
type Fetcher interface {
	DayEvents(ctx context.Context, dayStart, dayEnd time.Time) ([]*calendar.Event, error)
}

// Service provides the high-level timeline operations.
type Service struct {
	Calendar    Fetcher
	Persistence store.Persistence
}

// Session is the state one execution context carries between ticks: the last
// fetched, normalized event list. It is passed explicitly so tests can drive
// ticks with fixed clocks.
type Session struct {
	Events    []event.Event
	FetchedAt time.Time
}

// Snapshot is one tick's derived output.
type Snapshot struct {
	Classification timeline.Classification
	Badge          string
	DayProgress    float64
	Now            time.Time
}

// FetchDay pulls today's events (the local day containing now) and
// normalizes them into a fresh Session.
func (s *Service) FetchDay(ctx context.Context, now time.Time) (Session, error) {
	if s.Calendar == nil {
		return Session{}, errors.New("app: no calendar configured")
	}
	dayStart, dayEnd := timeutil.DayBounds(now)
	raw, err := s.Calendar.DayEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return Session{}, err
	}
	return Session{Events: event.NormalizeAll(raw), FetchedAt: now}, nil
}

// Snapshot runs the shared pipeline over a session: load today's overrides,
// derive effective events, classify, and compute presentation values. The
// session is read-only; calling Snapshot twice with the same inputs yields
// the same output.
func (s *Service) Snapshot(ctx context.Context, sess Session, now time.Time) (Snapshot, error) {
	if s.Persistence == nil {
		return Snapshot{}, errors.New("app: no persistence configured")
	}
	overrides, err := s.Persistence.Overrides(timeutil.DayKey(now))
	if err != nil {
		return Snapshot{}, err
	}
	effective := timeline.ApplyOverrides(sess.Events, overrides, now)
	c := timeline.Classify(effective, now)
	return Snapshot{
		Classification: c,
		Badge:          timeline.BadgeText(c, now),
		DayProgress:    timeline.DayProgress(now),
		Now:            now,
	}, nil
}

// MarkComplete records a completion override for today; the write lands
// before the call returns.
func (s *Service) MarkComplete(ctx context.Context, now time.Time, id string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.MarkComplete(timeutil.DayKey(now), id)
}

// UndoComplete removes a completion override for today.
func (s *Service) UndoComplete(ctx context.Context, now time.Time, id string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.UndoComplete(timeutil.DayKey(now), id)
}

// UpdateStreak advances the streak for today and returns the current count.
// The record is written only when it changes, so repeated session starts on
// the same day stay read-only.
func (s *Service) UpdateStreak(now time.Time) (int, error) {
	if s.Persistence == nil {
		return 0, errors.New("app: no persistence configured")
	}
	prev, err := s.Persistence.Streak()
	if err != nil {
		return 0, err
	}
	next := streak.Update(prev, now)
	if next != prev {
		if err := s.Persistence.SaveStreak(next); err != nil {
			return 0, err
		}
	}
	return next.Count, nil
}

// DueNotification decides whether the pre-event reminder should fire for the
// snapshot's next event: the countdown has entered the lead window and no
// marker exists yet for it today. The marker is persisted before the event
// is handed back, so a crash after notification cannot double-fire and a
// tick that skips past the exact lead minute still fires once.
func (s *Service) DueNotification(snap Snapshot, now time.Time) (*event.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	next := snap.Classification.Next
	if next == nil {
		return nil, nil
	}
	if timeline.MinutesUntil(next.Start, now) > timeline.NotifyLeadMinutes {
		return nil, nil
	}
	day := timeutil.DayKey(now)
	seen, err := s.Persistence.Notified(day, next.ID)
	if err != nil || seen {
		return nil, err
	}
	if err := s.Persistence.MarkNotified(day, next.ID); err != nil {
		return nil, err
	}
	notify := *next
	return &notify, nil
}
