package options

import (
	"github.com/spf13/cobra"
)

// TodayOptions
type TodayOptions struct {
	Table bool
}

func AddTableArg(cmd *cobra.Command, o *TodayOptions) {
	cmd.Flags().BoolVarP(&o.Table, "table", "t", false,
		"Render the timeline as a table.")
}
