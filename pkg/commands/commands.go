package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "nextup",
		Short: base.Wrap80("A now/next/upcoming view of today's calendar."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAuth(topLevel)
	addToday(topLevel)
	addUI(topLevel)
	addWatch(topLevel)
	addComplete(topLevel)
	addUndo(topLevel)
	addStreak(topLevel)
	addVersion(topLevel)
}
