package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"tableflip.dev/nextup/pkg/app"
	"tableflip.dev/nextup/pkg/badge"
	"tableflip.dev/nextup/pkg/gcal"
)

// Watch is the background reconciliation loop: on every scheduled tick it
// fetches the day, runs the shared pipeline, publishes the badge, and fires
// the pre-event notification when one is due. Ticks never overlap; a slow
// fetch makes the schedule skip, not queue.
type Watch struct {
	Service *app.Service
	Sink    badge.Sink
	// Spec is a cron schedule, "@every 1m" by default.
	Spec string
	// Once runs a single tick and exits; useful from timers and tests.
	Once bool
	Log  *slog.Logger
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no service")
	}
	if n.Sink == nil {
		return errors.New("can not watch, no badge sink")
	}
	log := n.Log
	if log == nil {
		log = slog.Default()
	}

	if n.Once {
		return n.tick(ctx, log)
	}

	spec := n.Spec
	if spec == "" {
		spec = "@every 1m"
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() {
		if err := n.tick(ctx, log); err != nil {
			log.Error("reconcile tick failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("bad watch schedule %q: %w", spec, err)
	}

	// First tick right away so the badge is fresh before the schedule kicks in.
	if err := n.tick(ctx, log); err != nil {
		log.Error("initial reconcile failed", "error", err)
	}

	log.Info("watching", "schedule", spec)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (n *Watch) tick(ctx context.Context, log *slog.Logger) error {
	now := time.Now()

	sess, err := n.Service.FetchDay(ctx, now)
	if err != nil {
		// No label is the failure signal; a stale countdown is worse than
		// none at all.
		if cerr := n.Sink.Clear(); cerr != nil {
			log.Error("clear badge failed", "error", cerr)
		}
		if gcal.IsAuth(err) {
			return fmt.Errorf("not signed in, run `nextup auth`: %w", err)
		}
		return err
	}

	snap, err := n.Service.Snapshot(ctx, sess, now)
	if err != nil {
		if cerr := n.Sink.Clear(); cerr != nil {
			log.Error("clear badge failed", "error", cerr)
		}
		return err
	}

	if snap.Badge == "" {
		if err := n.Sink.Clear(); err != nil {
			return err
		}
	} else {
		if err := n.Sink.Set(snap.Badge); err != nil {
			return err
		}
	}

	due, err := n.Service.DueNotification(snap, now)
	if err != nil {
		return err
	}
	if due != nil {
		body := fmt.Sprintf("%s at %s", due.Title, due.Start.Local().Format("15:04"))
		if err := n.Sink.Notify("Starting soon", body); err != nil {
			log.Error("notify failed", "event", due.ID, "error", err)
		}
		log.Info("notified", "event", due.ID, "title", due.Title)
	}

	log.Debug("reconciled", "events", len(sess.Events), "badge", snap.Badge)
	return nil
}
