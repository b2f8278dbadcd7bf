package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"wildlife-sightings/internal/adapters/storage"
	"wildlife-sightings/internal/platform/config"
	"wildlife-sightings/internal/platform/logger"
	"wildlife-sightings/internal/platform/metrics"
	"wildlife-sightings/internal/router"

	"github.com/spf13/cobra"
)

func rootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "api",
		Short:         "Wildlife sightings API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// sin subcomando levanta el servidor
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "ruta al YAML de configuración (default configs/config.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Levanta el servidor HTTP",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Aplica el schema en el storage configurado y termina",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context(), configPath)
			},
		},
	)
	return root
}

func bootstrap(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
		Writer: os.Stderr,
	})
	slog.SetDefault(log)
	return cfg, log, nil
}

func serve(ctx context.Context, configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Error("closing storage", slog.Any("error", err))
		}
	}()

	handler := router.NewRouter(router.Options{
		Logger:             log,
		Metrics:            metrics.New(),
		Animals:            repos.Animals,
		Sightings:          repos.Sightings,
		LegacyUpdateStatus: cfg.API.LegacyUpdateStatus,
		Docs:               cfg.API.Docs,
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("storage", cfg.Storage.Driver),
		)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func migrate(ctx context.Context, configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	if err := storage.Migrate(ctx, cfg.Storage); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema applied", slog.String("storage", cfg.Storage.Driver))
	return nil
}
