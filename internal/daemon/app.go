// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/sportsguide/internal/jobs"
	xglog "github.com/ManuGH/sportsguide/internal/log"
)

// Refresher runs one refresh for the given trigger.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) (*jobs.Status, error)
}

// AppOptions configures the background subsystems of App.
type AppOptions struct {
	// RefreshInterval schedules periodic refreshes; zero disables them.
	RefreshInterval time.Duration
	// WatchPath re-exports when this file changes; empty disables watching.
	WatchPath     string
	WatchDebounce time.Duration
	// SkipStartupRefresh serves existing artifacts without an initial refresh.
	SkipStartupRefresh bool
}

// App owns the long-lived runtime lifecycle (scheduler, watcher, signals)
// and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	refresher    Refresher
	opts         AppOptions
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager, refresher Refresher, opts AppOptions) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		refresher:    refresher,
		opts:         opts,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned background subsystems and blocks until ctx is
// cancelled or a server fails. Refresh failures are logged and never stop
// the daemon; the last good artifacts keep being served.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}
	if a.refresher == nil {
		return ErrMissingRefresher
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	g.Go(func() error {
		if !a.opts.SkipStartupRefresh {
			a.refresh(ctx, jobs.TriggerStartup)
		}
		if a.opts.RefreshInterval <= 0 {
			return nil
		}
		ticker := time.NewTicker(a.opts.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				a.refresh(ctx, jobs.TriggerSchedule)
			}
		}
	})

	if a.opts.WatchPath != "" {
		g.Go(func() error {
			// best-effort: a broken watcher must not take the server down
			err := watchFile(ctx, a.logger, a.opts.WatchPath, a.opts.WatchDebounce, func(ctx context.Context) {
				a.refresh(ctx, jobs.TriggerWatch)
			})
			if err != nil {
				a.logger.Warn().Err(err).Str(xglog.FieldEvent, "watch.start_failed").Msg("failed to start schedule watcher")
			}
			return nil
		})
	}

	if a.reloadSignal != nil {
		g.Go(func() error {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, a.reloadSignal)
			defer signal.Stop(sigChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-sigChan:
					a.logger.Info().
						Str(xglog.FieldEvent, "refresh.signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received signal, refreshing")
					a.refresh(ctx, jobs.TriggerSignal)
				}
			}
		})
	}

	return g.Wait()
}

func (a *App) refresh(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	if _, err := a.refresher.Refresh(ctx, trigger); err != nil {
		a.logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "refresh.skipped").
			Str(xglog.FieldTrigger, trigger).
			Msg("refresh failed, keeping previous artifacts")
	}
}
