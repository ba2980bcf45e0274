// Package calorieservice boots the calorie tracking HTTP service.
package calorieservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/icalorie/icalorie-server/internal/analysis"
	"github.com/icalorie/icalorie-server/internal/api"
	"github.com/icalorie/icalorie-server/internal/backup"
	"github.com/icalorie/icalorie-server/internal/config"
	"github.com/icalorie/icalorie-server/internal/factory"
	"github.com/icalorie/icalorie-server/internal/health"
	"github.com/icalorie/icalorie-server/internal/logger"
	"github.com/icalorie/icalorie-server/internal/services"
	"github.com/icalorie/icalorie-server/internal/store"
)

// Run starts the calorie service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("calorie-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("analysis_base_url", cfg.AnalysisBaseURL).
		Msg("Calorie service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := factory.BuildKV(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Storage backend unavailable")
		return err
	}
	st := store.New(backend)

	checker := health.NewStorageChecker(backend, log,
		time.Duration(cfg.HealthProbeTimeoutSeconds)*time.Second)
	go checker.Start(ctx, time.Duration(cfg.HealthIntervalSeconds)*time.Second)

	router := api.NewRouter(api.Deps{
		Auth:      services.NewAuthService(st, log),
		Profiles:  services.NewProfileService(st),
		DayLogs:   services.NewDayLogService(st),
		Analytics: services.NewAnalyticsService(st),
		Backup:    backup.New(backend, log),
		Analysis:  analysis.New(cfg.AnalysisBaseURL, time.Duration(cfg.AnalysisTimeoutSeconds)*time.Second),
		Health:    checker,
		Log:       log,
	})

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}
