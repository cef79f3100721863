// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Reconfigure(Config{Level: level, Output: &buf, Service: "test"})
	t.Cleanup(func() { Reconfigure(Config{Level: "info", Output: os.Stderr}) })
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestContextIDs(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		id   string
	}{
		{name: "nil context", ctx: nil, id: "test-id-123"},
		{name: "background context", ctx: context.Background(), id: "req-456"},
		{name: "empty id", ctx: context.Background(), id: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, RequestIDFromContext(ContextWithRequestID(tt.ctx, tt.id)))
			assert.Equal(t, tt.id, JobIDFromContext(ContextWithJobID(tt.ctx, tt.id)))
		})
	}
	//nolint:staticcheck // nil context is part of the contract
	assert.Empty(t, RequestIDFromContext(nil))
	assert.Empty(t, JobIDFromContext(context.Background()))
}

func TestNewJobContext(t *testing.T) {
	ctx, id := NewJobContext(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, JobIDFromContext(ctx))
}

func TestWithComponentFromContext(t *testing.T) {
	buf := captureLogs(t, "debug")

	ctx := ContextWithJobID(ContextWithRequestID(context.Background(), "req-1"), "job-1")
	l := WithComponentFromContext(ctx, "jobs")
	l.Info().Str(FieldEvent, "test.event").Msg("hello")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "jobs", lines[0][FieldComponent])
	assert.Equal(t, "req-1", lines[0][FieldRequestID])
	assert.Equal(t, "job-1", lines[0][FieldJobID])
	assert.Equal(t, "test.event", lines[0][FieldEvent])
	assert.Equal(t, "test", lines[0]["service"])
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, "warn")
	l := WithComponent("x")
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
}

func TestFromContext(t *testing.T) {
	buf := captureLogs(t, "info")

	base := FromContext(context.Background())
	base.Info().Msg("base")

	custom := zerolog.New(buf).With().Str("custom", "yes").Logger()
	ctx := custom.WithContext(context.Background())
	FromContext(ctx).Info().Msg("custom")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "test", lines[0]["service"])
	assert.Equal(t, "yes", lines[1]["custom"])
}

func TestDerive(t *testing.T) {
	buf := captureLogs(t, "info")
	l := Derive(func(c *zerolog.Context) { *c = c.Str("k", "v") })
	l.Info().Msg("derived")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "v", lines[0]["k"])
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sportsguide.log")
	var buf bytes.Buffer
	Reconfigure(Config{Level: "info", Output: &buf, File: &FileConfig{Path: path}})
	t.Cleanup(func() { Reconfigure(Config{Level: "info", Output: os.Stderr}) })

	l := WithComponent("file")
	l.Info().Str(FieldEvent, "file.test").Msg("to both")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file.test")
	assert.Contains(t, buf.String(), "file.test")
}

func TestMiddleware(t *testing.T) {
	buf := captureLogs(t, "info")

	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Debug().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/xmltv.xml", nil)
	req = req.WithContext(ContextWithRequestID(req.Context(), "rid-9"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "request.handled", lines[0][FieldEvent])
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "/xmltv.xml", lines[0][FieldPath])
	assert.Equal(t, float64(http.StatusTeapot), lines[0][FieldStatus])
	assert.Equal(t, "rid-9", lines[0][FieldRequestID])
	assert.Equal(t, float64(len("short and stout")), lines[0]["bytes"])
}
