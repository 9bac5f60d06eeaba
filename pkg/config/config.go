// Package config loads application settings from a .nextup config file or
// NEXTUP_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/nextup/pkg/timeutil"
)

// Config holds every tunable the commands need.
type Config struct {
	// DataPath is the diskv store root.
	DataPath string
	// CalendarID selects which calendar to read; "primary" by default.
	CalendarID string
	// TokenFile is where the OAuth token is cached.
	TokenFile string
	// BadgeFile is where the watch daemon writes the badge label.
	BadgeFile string
	// WatchSpec is the cron schedule for the background reconciliation.
	WatchSpec string
	// UITick is the interactive redraw interval; no network fetch happens
	// on this cadence, only re-derivation against the wall clock.
	UITick time.Duration
}

// Load reads configuration with viper, expanding ~ in paths.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.nextup")
	v.SetDefault("calendar", "primary")
	v.SetDefault("token_file", "~/.nextup/token.json")
	v.SetDefault("badge_file", "~/.nextup/badge")
	v.SetDefault("watch", "@every 1m")
	v.SetDefault("ui_tick", timeutil.DefaultTick)

	v.SetConfigName(".nextup")
	v.SetEnvPrefix("NEXTUP")
	v.AutomaticEnv()

	if override := os.Getenv("NEXTUP_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	tick, _, err := timeutil.ParseTick(v.GetString("ui_tick"))
	if err != nil {
		tick = 30 * time.Second
	}

	cfg := &Config{
		CalendarID: v.GetString("calendar"),
		WatchSpec:  v.GetString("watch"),
		UITick:     tick,
	}
	for key, target := range map[string]*string{
		"path":       &cfg.DataPath,
		"token_file": &cfg.TokenFile,
		"badge_file": &cfg.BadgeFile,
	} {
		expanded, err := homedir.Expand(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("config: expand %s: %w", key, err)
		}
		*target = expanded
	}

	return cfg, nil
}
