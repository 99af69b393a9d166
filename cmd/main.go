package main

import (
	"DentalCenter/config"
	"DentalCenter/database"
	"DentalCenter/logger"
	"DentalCenter/repositories"
	"DentalCenter/routes"
	"DentalCenter/services"
	"DentalCenter/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dental-center",
		Short:         "Dental center administration server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(resetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(log)
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) error {
	store, closer, err := database.OpenStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
	}()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	handler, err := routes.SetupRoutes(ctx, routes.Dependencies{
		Config: cfg,
		Logger: log,
		Store:  store,
		Mailer: utils.NewMailer(cfg.SMTP, log),
		Clock:  services.NewClock(loc),
	})
	if err != nil {
		return err
	}

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	serverErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown handling
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-serverErr:
		return fmt.Errorf("listenAndServe(): %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	wg.Wait()
	log.Info("server exited gracefully")
	return nil
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored collections and restore the seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			noSeed, _ := cmd.Flags().GetBool("no-seed")

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			store, closer, err := database.OpenStorage(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer closer.Close()

			if err := store.DeleteAll(ctx, repositories.StorageKeyPattern); err != nil {
				return fmt.Errorf("failed to delete stored collections: %w", err)
			}
			log.Info("stored collections deleted", zap.String("pattern", repositories.StorageKeyPattern))
			if noSeed {
				return nil
			}

			seedPatients, err := database.SeedPatients()
			if err != nil {
				return err
			}
			repositories.NewPatientRepository(store, log, seedPatients).Load(ctx)
			repositories.NewIncidentRepository(store, log, database.SeedIncidents()).Load(ctx)
			log.Info("seed data restored")
			return nil
		},
	}
	cmd.Flags().Bool("no-seed", false, "Leave the storage empty instead of restoring the seed data")
	return cmd
}
