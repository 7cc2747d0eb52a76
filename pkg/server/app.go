package server

import (
	"context"
	"os/signal"
	"syscall"

	"TrendGate/internal/usecase"
	"TrendGate/pkg/config"
	xhttp "TrendGate/pkg/http"
	applogger "TrendGate/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg    *config.Config
	srv    *xhttp.Server
	filter *usecase.TrendFilter
	l      *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, srv *xhttp.Server, filter *usecase.TrendFilter, l *applogger.Logger) *App {
	return &App{cfg: cfg, srv: srv, filter: filter, l: l}
}

// Run serves HTTP until ctx is done, SIGINT/SIGTERM arrives or the listener
// fails, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.l.Info(a.filter.Description(),
		applogger.String("environment", a.cfg.Environment),
		applogger.String("source", a.cfg.Source.Type),
		applogger.String("timeframe", a.cfg.TrendFilter.Timeframe),
		applogger.Bool("enabled", a.filter.Enabled()),
	)

	errCh := a.srv.Start()
	var runErr error
	select {
	case <-ctx.Done():
		a.l.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			a.l.Error("http server error", applogger.Error(err))
			runErr = err
		}
	}

	if err := a.srv.Stop(context.Background()); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}
	a.l.Info("shutdown complete")
	return runErr
}
