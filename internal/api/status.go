// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"
	"time"

	"github.com/ManuGH/sportsguide/internal/jobs"
)

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Version     string      `json:"version,omitempty"`
	Uptime      int64       `json:"uptime_seconds"`
	Refreshing  bool        `json:"refreshing"`
	LastSuccess *time.Time  `json:"last_success,omitempty"`
	Last        jobs.Status `json:"last"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := StatusResponse{
		Version:    s.cfg.Version,
		Uptime:     int64(time.Since(s.startTime).Seconds()),
		Refreshing: s.refreshing,
		Last:       s.status,
	}
	if !s.lastOK.IsZero() {
		t := s.lastOK
		resp.LastSuccess = &t
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, resp)
}
