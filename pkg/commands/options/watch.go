package options

import (
	"github.com/spf13/cobra"
)

// WatchOptions
type WatchOptions struct {
	Once      bool
	Spec      string
	BadgeFile string
	Quiet     bool
}

func AddWatchArgs(cmd *cobra.Command, o *WatchOptions) {
	cmd.Flags().BoolVar(&o.Once, "once", false,
		"Run a single reconciliation tick and exit.")
	cmd.Flags().StringVar(&o.Spec, "schedule", "",
		"Cron schedule for reconciliation ticks, e.g. '@every 1m'.")
	cmd.Flags().StringVar(&o.BadgeFile, "badge-file", "",
		"Override the badge file location.")
	cmd.Flags().BoolVar(&o.Quiet, "quiet", false,
		"Suppress desktop notifications; log them instead.")
}
