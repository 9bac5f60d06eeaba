package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	runstreak "tableflip.dev/nextup/pkg/runner/streak"
)

func addStreak(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "show the consecutive-day usage streak",
		Example: `
nextup streak
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := runstreak.Streak{Persistence: svc.Persistence}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
