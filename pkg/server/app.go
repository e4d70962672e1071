package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/cache"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	applogger "MacroPulse/pkg/logger"
)

// App owns the process lifecycle: first load, scheduled refresh, HTTP serving and shutdown.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	market     *usecase.MarketData
	httpServer *xhttp.Server
	cache      cache.Service
	cron       *cron.Cron
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	market *usecase.MarketData,
	httpServer *xhttp.Server,
	c cache.Service,
) *App {
	return &App{
		cfg:        cfg,
		logger:     l,
		market:     market,
		httpServer: httpServer,
		cache:      c,
	}
}

// Run loads the first snapshot, starts serving and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A broken dataset is fatal; overlay failures are not.
	if _, err := a.market.Load(ctx); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	if err := a.scheduleRefresh(ctx); err != nil {
		return err
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info("shutdown signal received", applogger.String("signal", sig.String()))
	case runErr = <-a.httpServer.Errors():
		a.logger.Error("http server failed", applogger.Error(runErr))
	}

	cancel()
	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// scheduleRefresh registers the periodic reload. A disabled refresh leaves cron nil.
func (a *App) scheduleRefresh(ctx context.Context) error {
	if !a.cfg.Refresh.Enabled {
		a.logger.Info("scheduled refresh disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(a.cfg.Refresh.Schedule, func() {
		if _, err := a.market.Load(ctx); err != nil {
			a.logger.Error("scheduled refresh failed", applogger.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("refresh schedule %q: %w", a.cfg.Refresh.Schedule, err)
	}

	c.Start()
	a.cron = c
	a.logger.Info("scheduled refresh started", applogger.String("schedule", a.cfg.Refresh.Schedule))
	return nil
}

func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	if a.cron != nil {
		// Wait for an in-flight refresh to observe the cancelled context.
		<-a.cron.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	var stopErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		stopErr = err
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return stopErr
}
