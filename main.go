package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kendall-kelly/fichas-api/config"
	"github.com/kendall-kelly/fichas-api/logger"
	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/routes"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fichas",
		Short: "Fichas API - garment production order sheets",
		Long: `Fichas API stores garment production order sheets and their customers,
and serves the dashboard and production reports over a JSON REST API.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db, log)

			tables, err := db.Migrator().GetTables()
			if err != nil {
				return fmt.Errorf("failed to list tables: %w", err)
			}
			log.Info().Strs("tables", tables).Msg("database migration completed successfully")
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}
}

// bootstrap loads configuration, builds the logger and opens a migrated database
func bootstrap() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	log := logger.New(logger.Config{Env: cfg.GoEnv, Level: cfg.LogLevel})

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return nil, log, nil, err
	}

	if err := models.AutoMigrate(db); err != nil {
		closeDB(db, log)
		return nil, log, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return cfg, log, db, nil
}

func serve(ctx context.Context) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	router, err := routes.Setup(routes.Dependencies{Config: cfg, DB: db, Logger: log})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.GoEnv).Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, closing server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func closeDB(db *gorm.DB, log zerolog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}
