package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/nextup/pkg/config"
	"tableflip.dev/nextup/pkg/gcal"
	"tableflip.dev/nextup/pkg/runner/auth"
)

func addAuth(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "auth",
		Aliases: []string{"login", "signin"},
		Short:   "sign in to Google Calendar",
		Long: "Runs the OAuth consent flow and caches the resulting token.\n" +
			"Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in the environment\n" +
			"or a .env file.",
		Example: `
nextup auth
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			oauthCfg, err := gcal.OAuthConfigFromEnv()
			if err != nil {
				return err
			}
			s := auth.Auth{
				Config:    oauthCfg,
				TokenFile: cfg.TokenFile,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
