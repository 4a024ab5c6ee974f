package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saltyorg/northwind/internal/config"
	"github.com/saltyorg/northwind/internal/database"
	"github.com/saltyorg/northwind/internal/logging"
	"github.com/saltyorg/northwind/internal/maintenance"
	"github.com/saltyorg/northwind/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "northwind",
		Short:        "Northwind - read-mostly JSON API over the Northwind sample database",
		SilenceUsage: true,
		RunE:         run,
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the Northwind schema if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(ctx context.Context, db *database.DB) error {
				if err := db.Migrate(ctx); err != nil {
					return err
				}
				v, err := db.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				log.Info().Int("version", v).Msg("Schema is up to date")
				return nil
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Migrate the schema and insert the sample dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(ctx context.Context, db *database.DB) error {
				if err := db.Migrate(ctx); err != nil {
					return err
				}
				if err := db.Seed(ctx); err != nil {
					return err
				}
				log.Info().Msg("Seed dataset loaded")
				return nil
			})
		},
	})

	var vacuum bool
	maintenanceCmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Run PRAGMA optimize and optionally VACUUM",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(ctx context.Context, db *database.DB) error {
				if err := maintenance.New(db).RunNow(ctx); err != nil {
					return err
				}
				if vacuum {
					if err := db.Vacuum(ctx); err != nil {
						return err
					}
					log.Info().Msg("Database vacuumed")
				}
				return nil
			})
		},
	}
	maintenanceCmd.Flags().BoolVar(&vacuum, "vacuum", false, "Also rebuild the database file with VACUUM")
	rootCmd.AddCommand(maintenanceCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("northwind %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	return rootCmd
}

// loadConfig reads flags and environment and applies logging settings
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.Apply(logging.Options{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogBackups,
		MaxAgeDays: cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	return cfg, nil
}

// withDatabase opens the configured database for a one-shot command
func withDatabase(cmd *cobra.Command, fn func(ctx context.Context, db *database.DB) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.New(cfg.DBPath, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(cmd.Context(), db)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Warn if binding to all interfaces without an allow list
	if (cfg.Bind == "" || cfg.Bind == "0.0.0.0" || cfg.Bind == "::") && cfg.AllowSubnet == "" {
		log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider using --bind or --allow-subnet for security.")
	}

	log.Info().
		Str("version", version).
		Str("addr", cfg.Address()).
		Str("allow_subnet", cfg.AllowSubnet).
		Str("database", cfg.DBPath).
		Msg("Starting Northwind")

	db, err := database.New(cfg.DBPath, cfg.DBMaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	scheduler := maintenance.New(db)
	started, err := scheduler.Start(cfg.MaintenanceSchedule)
	if err != nil {
		return err
	}
	if started {
		log.Info().Time("next_run", scheduler.NextRun()).Msg("Maintenance scheduler started")
	}
	defer scheduler.Stop()

	server, err := web.NewServer(db, cfg)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}

	log.Info().Msg("Northwind stopped")
	return nil
}
