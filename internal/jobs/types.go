// SPDX-License-Identifier: MIT

// Package jobs runs the scrape and export pipelines that produce the
// playlist, guide and preview artifacts.
package jobs

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ManuGH/sportsguide/internal/canvas"
	"github.com/ManuGH/sportsguide/internal/config"
)

// CanvasFetcher fetches the provider channel canvas.
type CanvasFetcher interface {
	ChannelCanvas(ctx context.Context) (*canvas.Canvas, error)
}

// Status represents the outcome of the last export.
type Status struct {
	LastRun    time.Time `json:"last_run"`
	DurationMS int64     `json:"duration_ms"`
	Matches    int       `json:"matches"`
	Channels   int       `json:"channels"`
	Programmes int       `json:"programmes"`
	Playables  int       `json:"playables"`
	Scraped    int       `json:"scraped,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// ScrapeResult is the outcome of a scrape.
type ScrapeResult struct {
	Stats canvas.Stats `json:"stats"`
	// Written is false when the canvas held no matches and the previous
	// schedule file was kept.
	Written bool `json:"written"`
}

// Paths are the artifact locations resolved under the data directory.
type Paths struct {
	Schedule  string
	RawCanvas string
	Playlist  string
	XMLTV     string
	Preview   string
}

// PathsFor joins the configured file names with the data directory.
func PathsFor(cfg config.AppConfig) Paths {
	return Paths{
		Schedule:  filepath.Join(cfg.DataDir, cfg.ScheduleFile),
		RawCanvas: filepath.Join(cfg.DataDir, cfg.RawCanvasFile),
		Playlist:  filepath.Join(cfg.DataDir, cfg.PlaylistFile),
		XMLTV:     filepath.Join(cfg.DataDir, cfg.XMLTVFile),
		Preview:   filepath.Join(cfg.DataDir, cfg.PreviewFile),
	}
}

// NewClient builds a provider client from cfg.
func NewClient(cfg config.AppConfig) *canvas.Client {
	return canvas.New(canvas.Options{
		BaseURL:    cfg.SourceURL,
		Channel:    cfg.SourceChannel,
		UTSK:       cfg.UTSK,
		UTSCF:      cfg.UTSCF,
		Locale:     cfg.Locale,
		Storefront: cfg.Storefront,
		Timeout:    cfg.SourceTimeout,
	})
}
