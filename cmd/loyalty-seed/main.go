package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quickbite/loyalty/loyalty"
	"github.com/quickbite/loyalty/loyalty/database"
	"github.com/quickbite/loyalty/loyalty/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "loyalty-seed",
	Short: "create the loyalty schema and seed the progression catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loyalty.LoadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := database.New(ctx, database.DBConfig{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Database,
			PoolSize: cfg.DB.PoolSize,
		})
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			slog.Error("Schema initialization failed", "error", err)
			return err
		}

		slog.Info("Schema created and progression catalog seeded")
		return nil
	},
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler("Loyalty-Seed", slog.LevelInfo)))

	rootCmd.Flags().StringVar(&configPath, "config", "config.toml", "path to config")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
