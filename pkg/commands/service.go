package commands

import (
	"tableflip.dev/nextup/pkg/app"
	"tableflip.dev/nextup/pkg/config"
	"tableflip.dev/nextup/pkg/gcal"
	"tableflip.dev/nextup/pkg/store"
)

// loadService assembles the shared Service from config. The calendar client
// is left nil when OAuth credentials are absent so store-only commands
// (complete, undo, streak) still work offline.
func loadService() (*app.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg.DataPath)
	if err != nil {
		return nil, nil, err
	}

	svc := &app.Service{Persistence: p}
	if oauthCfg, err := gcal.OAuthConfigFromEnv(); err == nil {
		provider := &gcal.FileTokenProvider{Path: cfg.TokenFile}
		svc.Calendar = gcal.NewClient(oauthCfg, provider, cfg.CalendarID)
	}
	return svc, cfg, nil
}

// requireCalendar surfaces the credential error commands that must fetch
// would otherwise bury.
func requireCalendar(svc *app.Service) error {
	if svc.Calendar != nil {
		return nil
	}
	_, err := gcal.OAuthConfigFromEnv()
	return err
}
