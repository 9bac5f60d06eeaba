package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/nextup/pkg/badge"
	"tableflip.dev/nextup/pkg/commands/options"
	"tableflip.dev/nextup/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	wo := &options.WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "run the background reconciliation daemon",
		Long: "Periodically fetches today's events, keeps the badge file current,\n" +
			"and fires a desktop notification shortly before the next event starts.",
		Example: `
nextup watch
nextup watch --once
nextup watch --schedule "@every 2m"
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, cfg, err := loadService()
			if err != nil {
				return err
			}
			if err := requireCalendar(svc); err != nil {
				return oo.HandleError(err)
			}

			spec := wo.Spec
			if spec == "" {
				spec = cfg.WatchSpec
			}
			badgeFile := wo.BadgeFile
			if badgeFile == "" {
				badgeFile = cfg.BadgeFile
			}

			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := watch.Watch{
				Service: svc,
				Sink:    &badge.FileSink{Path: badgeFile, DisableNotify: wo.Quiet},
				Spec:    spec,
				Once:    wo.Once,
				Log:     log,
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddWatchArgs(cmd, wo)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
