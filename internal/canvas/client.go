// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package canvas fetches and parses the provider's channel canvas.
package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/metrics"
)

const (
	DefaultBaseURL    = "https://tv.apple.com/api/uts/v3"
	DefaultChannel    = "tvs.sbd.7000"
	DefaultLocale     = "en-US"
	DefaultStorefront = "143441"
	DefaultTimeout    = 15 * time.Second
	DefaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

	siteOrigin   = "https://tv.apple.com"
	apiVersion   = "90"
	maxBodyBytes = 32 << 20
	maxErrorBody = 512

	opChannelCanvas = "channel_canvas"
)

// Options configures a Client. Zero values take the defaults above.
type Options struct {
	BaseURL    string
	Channel    string
	UTSK       string
	UTSCF      string
	Locale     string
	Storefront string
	UserAgent  string
	Referer    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Canvas is a fetched canvas document.
type Canvas struct {
	Raw  []byte
	Tree any
}

type Client struct {
	base string
	opts Options
	http *http.Client
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Channel == "" {
		opts.Channel = DefaultChannel
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Storefront == "" {
		opts.Storefront = DefaultStorefront
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Referer == "" {
		opts.Referer = siteOrigin + "/us/channel/mls-season-pass/" + opts.Channel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		base: strings.TrimRight(opts.BaseURL, "/"),
		opts: opts,
		http: hc,
	}
}

// CanvasURL is the request URL for the configured channel, tokens included.
func (c *Client) CanvasURL() string {
	q := url.Values{}
	q.Set("caller", "web")
	q.Set("locale", c.opts.Locale)
	q.Set("pfm", "web")
	q.Set("sf", c.opts.Storefront)
	q.Set("v", apiVersion)
	q.Set("utsk", c.opts.UTSK)
	q.Set("utscf", c.opts.UTSCF)
	return c.base + "/canvases/channels/" + url.PathEscape(c.opts.Channel) + "?" + q.Encode()
}

// ChannelCanvas fetches the channel canvas. The request is made once; there
// is no retry.
func (c *Client) ChannelCanvas(ctx context.Context) (*Canvas, error) {
	logger := xglog.WithComponentFromContext(ctx, "canvas")
	start := time.Now()

	out, status, err := c.fetch(ctx)
	metrics.ObserveUpstream(opChannelCanvas, Class(err), time.Since(start))
	if err != nil {
		logger.Warn().Err(err).
			Str(xglog.FieldEvent, "canvas.fetch.failed").
			Int(xglog.FieldStatus, status).
			Msg("channel canvas fetch failed")
		return nil, err
	}
	logger.Info().
		Str(xglog.FieldEvent, "canvas.fetched").
		Int("bytes", len(out.Raw)).
		Int64(xglog.FieldDurationMS, time.Since(start).Milliseconds()).
		Msg("channel canvas fetched")
	return out, nil
}

func (c *Client) fetch(ctx context.Context) (*Canvas, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CanvasURL(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build canvas request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", siteOrigin)
	req.Header.Set("Referer", c.opts.Referer)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, transportError(opChannelCanvas, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, res.StatusCode, statusError(opChannelCanvas, res.StatusCode, strings.TrimSpace(string(snippet)))
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, res.StatusCode, transportError(opChannelCanvas, err)
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, res.StatusCode, &Error{Sentinel: ErrUpstreamBadResponse, Operation: opChannelCanvas, Status: res.StatusCode, Err: err}
	}
	return &Canvas{Raw: raw, Tree: tree}, res.StatusCode, nil
}
