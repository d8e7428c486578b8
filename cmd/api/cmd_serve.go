package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/progress-tracker/config"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/bootstrap"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/logging"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/repository"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/stats"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/postgres"
)

const (
	serviceName     = "progress-api"
	shutdownTimeout = 10 * time.Second
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default command)",
	RunE:  runServe,
}

func init() {
	// serve is also the root's default action, so both accept --port.
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenStore(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	deps := bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        version,
		Logger:         logger,
		DB:             db,
		CacheTTL:       cfg.Redis.TTL,
		Policy:         domain.ProgressPolicy{RejectNonPositive: cfg.Progress.RejectNonPositive},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	}

	if cfg.Database.Driver == config.DriverPostgres {
		pool, err := bootstrap.OpenPool(ctx, bootstrap.PoolOptions{DSN: postgres.DSN(&cfg.Database)})
		if err != nil {
			logger.Warn("health pool unavailable, probing through the store", zap.Error(err))
		} else {
			defer pool.Close()
			deps.Pool = pool
		}
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("cache disabled", zap.Error(err))
	} else if rdb != nil {
		defer rdb.Close()
		deps.Redis = rdb
		logger.Info("cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}

	if cfg.Stats.Schedule != "" {
		scheduler := stats.NewScheduler(repository.NewProjectRepository(db), logger)
		if err := scheduler.Start(ctx, cfg.Stats.Schedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("driver", cfg.Database.Driver),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
