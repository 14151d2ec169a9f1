package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/infrastructure/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewConnection(&cfg.Database, cfg.Log, logger)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := database.Close(db, logger); err != nil {
					logger.Error("Failed to close database connection", zap.Error(err))
				}
			}()

			if err := database.Migrate(db, logger); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}
			logger.Info("Database schema is up to date")
			return nil
		},
	}
}
