package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/config"
	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
	rosterService "github.com/cmlabs-hris/roster-viewer-go/internal/service/roster"
	"github.com/spf13/cobra"
)

// globalFlags override the environment configuration for a single run.
type globalFlags struct {
	timezone string
	domain   string
	workers  int
	logLevel string
	now      string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Roster viewer tooling",
		Long:          `Resolves roster grids from snapshot files and inspects visible windows and colors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.timezone, "tz", "", "IANA zone used for day truncation (default ROSTER_TIMEZONE)")
	rootCmd.PersistentFlags().StringVar(&flags.domain, "domain", "", "default account domain (default ROSTER_DEFAULT_DOMAIN)")
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "rows resolved concurrently (default ROSTER_WORKERS)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (default LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flags.now, "now", "", "pin today's date (YYYY-MM-DD or DD-MM-YYYY)")

	rootCmd.AddCommand(newResolveCmd(flags))
	rootCmd.AddCommand(newWindowCmd(flags))
	rootCmd.AddCommand(newContrastCmd(flags))
	rootCmd.AddCommand(newMigrateCmd(flags))
	return rootCmd
}

// loadConfig reads the environment configuration and applies the flags on
// top of it.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flags.timezone != "" {
		cfg.Roster.Timezone = flags.timezone
	}
	if flags.domain != "" {
		cfg.Roster.DefaultDomain = flags.domain
	}
	if flags.workers != 0 {
		cfg.Roster.Workers = flags.workers
	}
	if flags.logLevel != "" {
		cfg.App.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logger.NewWithWriter(cmd.ErrOrStderr(), cfg.App.Env, cfg.App.LogLevel, "app", "rosterctl")
}

// clock returns the time source for a run. A pinned date resolves to noon
// so zone offsets never move it to another day.
func clock(flags *globalFlags, loc *time.Location) (func() time.Time, error) {
	if strings.TrimSpace(flags.now) == "" {
		return time.Now, nil
	}
	for _, layout := range []string{time.DateOnly, "02-01-2006"} {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(flags.now), loc); err == nil {
			pinned := t.Add(12 * time.Hour)
			return func() time.Time { return pinned }, nil
		}
	}
	return nil, fmt.Errorf("--now: %w", roster.ErrInvalidFocusDate)
}

func newService(cfg *config.Config, repos rosterService.Repositories, now func() time.Time, log *slog.Logger) roster.RosterService {
	return rosterService.NewRosterService(repos, rosterService.Config{
		Location:      cfg.Roster.Location(),
		DefaultDomain: cfg.Roster.DefaultDomain,
		ShowWeekends:  cfg.Roster.ShowWeekends,
		DefaultView:   cfg.Roster.DefaultView,
		Workers:       cfg.Roster.Workers,
	}, now, log)
}
