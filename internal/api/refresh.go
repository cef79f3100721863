// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ManuGH/sportsguide/internal/jobs"
	"github.com/ManuGH/sportsguide/internal/log"
)

const apiRefreshTimeout = 5 * time.Minute

// errRefreshFailed is what clients see; details stay in the log.
var errRefreshFailed = errors.New("refresh operation failed")

// Refresh runs a refresh and records its status. Concurrent callers share a
// single in-flight run. Watch triggers only re-export since the schedule on
// disk is what changed.
func (s *Server) Refresh(ctx context.Context, trigger string) (*jobs.Status, error) {
	st, _, err := s.refresh(ctx, trigger)
	return st, err
}

func (s *Server) refresh(ctx context.Context, trigger string) (*jobs.Status, bool, error) {
	client := s.client
	key := "refresh"
	if trigger == jobs.TriggerWatch || client == nil {
		client = nil
		key = "export"
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		s.setRefreshing(true)
		defer s.setRefreshing(false)

		st, err := s.refreshFn(ctx, s.cfg, client, trigger)
		s.record(st, err)
		return st, err
	})
	if err != nil {
		return nil, shared, err
	}
	st := *v.(*jobs.Status)
	return &st, shared, nil
}

func (s *Server) setRefreshing(on bool) {
	s.mu.Lock()
	s.refreshing = on
	s.mu.Unlock()
}

func (s *Server) record(st *jobs.Status, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.Error = errRefreshFailed.Error()
		return
	}
	s.status = *st
	s.lastOK = st.LastRun
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "api")

	// the job outlives a disconnecting client but not the server
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), apiRefreshTimeout)
	defer cancel()

	start := time.Now()
	st, shared, err := s.refresh(ctx, jobs.TriggerAPI)
	if shared {
		w.Header().Set("X-Refresh-Shared", "true")
	}
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "refresh.failed").
			Bool("shared", shared).
			Int64(log.FieldDurationMS, time.Since(start).Milliseconds()).
			Msg("refresh failed")
		writeError(w, r, http.StatusInternalServerError, errRefreshFailed.Error())
		return
	}

	logger.Info().
		Str(log.FieldEvent, "refresh.success").
		Bool("shared", shared).
		Int(log.FieldChannels, st.Channels).
		Int64(log.FieldDurationMS, time.Since(start).Milliseconds()).
		Msg("refresh completed")
	writeJSON(w, http.StatusOK, st)
}
