package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/nextup/pkg/store"

	teaui "tableflip.dev/nextup/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive timeline",
		Example: `
nextup ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := loadService()
			if err != nil {
				return err
			}
			if err := requireCalendar(svc); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// Redraw when another context (the watch daemon, a second
			// terminal) writes an override.
			var changes <-chan store.Event
			if w, ok := svc.Persistence.(store.Watcher); ok {
				if ch, err := w.Watch(ctx); err == nil {
					changes = ch
				}
			}

			return teaui.Run(svc, cfg.UITick, changes)
		},
	}

	topLevel.AddCommand(cmd)
}
