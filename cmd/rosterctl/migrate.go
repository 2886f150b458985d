package main

import (
	"context"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the roster record tables in the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 1})
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgresql.EnsureSchema(ctx, db); err != nil {
				return err
			}
			log.Info("schema applied", "database", cfg.Database.Name)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up after this long")
	return cmd
}
