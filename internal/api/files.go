// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/ManuGH/sportsguide/internal/log"
)

const (
	contentTypeM3U  = "audio/x-mpegurl"
	contentTypeXML  = "application/xml; charset=utf-8"
	contentTypeJSON = "application/json"
)

var errNotGenerated = errors.New("artifact not generated yet")

// serveArtifact serves one exported file. Paths are fixed at route setup so
// no request data reaches the filesystem.
func (s *Server) serveArtifact(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.WithComponentFromContext(r.Context(), "api")

		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				recordFileRequest("not_generated")
				w.Header().Set("Retry-After", "30")
				writeError(w, r, http.StatusServiceUnavailable, errNotGenerated.Error())
				return
			}
			logger.Error().Err(err).Str(log.FieldEvent, "file_req.internal_error").Str(log.FieldPath, path).Msg("could not open artifact")
			recordFileRequest("internal_error")
			writeInternalError(w, r)
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil {
			logger.Error().Err(err).Str(log.FieldEvent, "file_req.internal_error").Str(log.FieldPath, path).Msg("could not stat artifact")
			recordFileRequest("internal_error")
			writeInternalError(w, r)
			return
		}

		recordFileRequest("served")
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		// ServeContent handles HEAD, ranges and If-Modified-Since
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}
