package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/nextup/pkg/commands/options"
	"tableflip.dev/nextup/pkg/runner/today"
)

func addToday(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	to := &options.TodayOptions{}

	cmd := &cobra.Command{
		Use:     "today",
		Aliases: []string{"now"},
		Short:   "show the now/next/upcoming timeline for today",
		Example: `
nextup today
nextup today --table
nextup today --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			if err := requireCalendar(svc); err != nil {
				return oo.HandleError(err)
			}
			s := today.Today{
				ShowID:  io.ShowID,
				Table:   to.Table,
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddTableArg(cmd, to)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
