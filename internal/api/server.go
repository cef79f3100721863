// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api serves the exported artifacts and the refresh control surface.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/ManuGH/sportsguide/internal/config"
	"github.com/ManuGH/sportsguide/internal/health"
	"github.com/ManuGH/sportsguide/internal/jobs"
)

// RefreshFunc runs one refresh. It defaults to jobs.Refresh.
type RefreshFunc func(ctx context.Context, cfg config.AppConfig, client jobs.CanvasFetcher, trigger string) (*jobs.Status, error)

// Server represents the HTTP API server.
type Server struct {
	cfg    config.AppConfig
	client jobs.CanvasFetcher

	refreshFn RefreshFunc
	group     singleflight.Group

	mu         sync.RWMutex
	status     jobs.Status
	lastOK     time.Time
	refreshing bool

	healthManager *health.Manager
	startTime     time.Time
	router        chi.Router
}

// Option allows functional configuration of the Server.
type Option func(*Server)

// WithClient sets the provider client used by fetching refreshes.
func WithClient(c jobs.CanvasFetcher) Option {
	return func(s *Server) { s.client = c }
}

// WithRefreshFunc overrides the refresh implementation (for tests).
func WithRefreshFunc(fn RefreshFunc) Option {
	return func(s *Server) { s.refreshFn = fn }
}

// New creates a server for cfg.
func New(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		refreshFn: jobs.Refresh,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	paths := jobs.PathsFor(cfg)
	s.healthManager = health.NewManager(cfg.Version)
	s.healthManager.RegisterChecker(health.NewLastRunChecker(s.LastRun, 3*cfg.RefreshInterval))
	s.healthManager.RegisterChecker(health.NewFileChecker("playlist", paths.Playlist))
	s.healthManager.RegisterChecker(health.NewFileChecker("xmltv", paths.XMLTV))

	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HealthManager exposes the health checks.
func (s *Server) HealthManager() *health.Manager {
	return s.healthManager
}

// Status returns a copy of the last refresh status.
func (s *Server) Status() jobs.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastRun reports the last successful export and the error of the last
// refresh, if it failed.
func (s *Server) LastRun() (time.Time, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastOK, s.status.Error
}
