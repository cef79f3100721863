// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package canvas

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelCanvas_Success(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()

	c := New(Options{BaseURL: mock.URL, UTSK: "k", UTSCF: "cf"})
	cv, err := c.ChannelCanvas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultCanvas, string(cv.Raw))
	require.IsType(t, map[string]any{}, cv.Tree)

	hdr, u := mock.LastRequest()
	assert.Equal(t, "/canvases/channels/"+DefaultChannel, u.Path)
	q := u.Query()
	assert.Equal(t, "web", q.Get("caller"))
	assert.Equal(t, DefaultLocale, q.Get("locale"))
	assert.Equal(t, "web", q.Get("pfm"))
	assert.Equal(t, DefaultStorefront, q.Get("sf"))
	assert.Equal(t, "90", q.Get("v"))
	assert.Equal(t, "k", q.Get("utsk"))
	assert.Equal(t, "cf", q.Get("utscf"))

	assert.Equal(t, DefaultUserAgent, hdr.Get("User-Agent"))
	assert.Equal(t, "application/json", hdr.Get("Accept"))
	assert.Equal(t, "https://tv.apple.com", hdr.Get("Origin"))
	assert.Contains(t, hdr.Get("Referer"), DefaultChannel)
	assert.Equal(t, 1, mock.Requests())
}

func TestChannelCanvas_CustomOptions(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()

	c := New(Options{BaseURL: mock.URL + "/", Channel: "tvs.sbd.1", Locale: "fr-CA", Storefront: "143455", UserAgent: "ua", Referer: "https://example.test/"})
	_, err := c.ChannelCanvas(context.Background())
	require.NoError(t, err)

	hdr, u := mock.LastRequest()
	assert.Equal(t, "/canvases/channels/tvs.sbd.1", u.Path)
	assert.Equal(t, "fr-CA", u.Query().Get("locale"))
	assert.Equal(t, "143455", u.Query().Get("sf"))
	assert.Equal(t, "ua", hdr.Get("User-Agent"))
	assert.Equal(t, "https://example.test/", hdr.Get("Referer"))
}

func TestChannelCanvas_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		class    string
	}{
		{name: "not found", status: http.StatusNotFound, body: "nope", sentinel: ErrNotFound, class: "http_4xx"},
		{name: "unauthorized", status: http.StatusUnauthorized, sentinel: ErrForbidden, class: "http_4xx"},
		{name: "forbidden", status: http.StatusForbidden, sentinel: ErrForbidden, class: "http_4xx"},
		{name: "server error", status: http.StatusBadGateway, sentinel: ErrUpstreamError, class: "http_5xx"},
		{name: "teapot", status: http.StatusTeapot, sentinel: ErrUpstreamBadResponse, class: "bad_response"},
		{name: "invalid json", status: http.StatusOK, body: "{not json", sentinel: ErrUpstreamBadResponse, class: "bad_response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockServer()
			defer mock.Close()
			mock.SetResponse(tt.status, tt.body)

			_, err := New(Options{BaseURL: mock.URL}).ChannelCanvas(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.class, Class(err))

			var ce *Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "channel_canvas", ce.Operation)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, ce.Status)
				assert.Equal(t, tt.body, ce.Body)
			}
		})
	}
}

func TestChannelCanvas_Timeout(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	mock.SetDelay(2 * time.Second)

	_, err := New(Options{BaseURL: mock.URL, Timeout: 50 * time.Millisecond}).ChannelCanvas(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "timeout", Class(err))
}

func TestChannelCanvas_ContextDeadline(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	mock.SetDelay(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(Options{BaseURL: mock.URL}).ChannelCanvas(ctx)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestChannelCanvas_Unreachable(t *testing.T) {
	mock := NewMockServer()
	base := mock.URL
	mock.Close()

	_, err := New(Options{BaseURL: base}).ChannelCanvas(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, "network", Class(err))
}

func TestClass(t *testing.T) {
	assert.Equal(t, "ok", Class(nil))
	assert.Equal(t, "error", Class(errors.New("other")))
	assert.Equal(t, "timeout", Class(&Error{Sentinel: ErrTimeout}))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Sentinel: ErrNotFound, Operation: "channel_canvas", Status: 404, Body: "gone"}
	assert.Equal(t, "canvas: channel_canvas: upstream: resource not found (HTTP 404): gone", err.Error())
}
