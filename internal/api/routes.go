// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/sportsguide/internal/api/middleware"
	"github.com/ManuGH/sportsguide/internal/jobs"
)

// telemetryServiceName names the tracer for HTTP server spans.
const telemetryServiceName = "sportsguide"

func (s *Server) routes() chi.Router {
	stack := middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		EnableLogging:         true,
	}
	if s.cfg.TelemetryEnabled {
		stack.TracingService = telemetryServiceName
	}
	r := middleware.NewRouter(stack)

	paths := jobs.PathsFor(s.cfg)
	r.Get("/healthz", s.healthManager.ServeHealth)
	r.Get("/readyz", s.healthManager.ServeReady)
	if s.cfg.MetricsListenAddr == "" {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Get("/playlist.m3u", s.serveArtifact(paths.Playlist, contentTypeM3U))
		r.Get("/xmltv.xml", s.serveArtifact(paths.XMLTV, contentTypeXML))
		r.Get("/schedule.json", s.serveArtifact(paths.Schedule, contentTypeJSON))
		if s.cfg.PreviewEnabled {
			r.Get("/deeplinks.json", s.serveArtifact(paths.Preview, contentTypeJSON))
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.With(middleware.RefreshRateLimit(s.cfg.RefreshRateLimit)).Post("/refresh", s.handleRefresh)
	})

	r.NotFound(writeNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
