package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/nextup/pkg/commands/options"
	"tableflip.dev/nextup/pkg/runner/undo"
)

func addUndo(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "undo",
		Aliases: []string{"uncomplete", "restore"},
		Short:   "remove a completion override for today",
		Example: `
nextup undo <event id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event id")
			}
			io.ID = strings.Join(args, " ")

			return nil
		},

		RunE: func(_ *cobra.Command, _ []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := undo.Undo{
				ID:      io.ID,
				ShowID:  io.ShowID,
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
