// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"os"

	"github.com/ManuGH/sportsguide/internal/canvas"
	"github.com/ManuGH/sportsguide/internal/config"
	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/metrics"
)

// Scrape fetches the channel canvas, stores it verbatim and writes the
// parsed matches sorted by event time. An empty canvas keeps the previous
// schedule file.
func Scrape(ctx context.Context, cfg config.AppConfig, client CanvasFetcher) (*ScrapeResult, error) {
	logger := xglog.WithComponentFromContext(ctx, "jobs")
	paths := PathsFor(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		metrics.IncRefreshFailure("config")
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	cv, err := client.ChannelCanvas(ctx)
	if err != nil {
		metrics.IncRefreshFailure("fetch")
		return nil, fmt.Errorf("fetch canvas: %w", err)
	}

	if err := writeRawCanvas(ctx, paths.RawCanvas, cv.Raw); err != nil {
		metrics.IncRefreshFailure("write_raw")
		return nil, err
	}
	logger.Info().
		Str(xglog.FieldEvent, "canvas.write").
		Str(xglog.FieldPath, paths.RawCanvas).
		Int("bytes", len(cv.Raw)).
		Msg("raw canvas saved")

	records := canvas.ParseCanvas(cv.Tree)
	canvas.SortByEventTime(records)
	stats := canvas.Summarize(records)
	metrics.RecordMatchesScraped(len(records))

	if len(records) == 0 {
		logger.Warn().
			Str(xglog.FieldEvent, "scrape.empty").
			Str(xglog.FieldPath, paths.Schedule).
			Msg("no matches in canvas, keeping previous schedule")
		return &ScrapeResult{Stats: stats}, nil
	}

	if err := writeSchedule(ctx, paths.Schedule, records); err != nil {
		metrics.IncRefreshFailure("write_schedule")
		return nil, err
	}
	logger.Info().
		Str(xglog.FieldEvent, "scrape.success").
		Str(xglog.FieldPath, paths.Schedule).
		Int(xglog.FieldMatches, stats.Total).
		Int("live", stats.Live).
		Int("upcoming", stats.Upcoming).
		Int("teams", stats.Teams).
		Strs("leagues", stats.Leagues).
		Int("with_images", stats.WithImages).
		Msg("schedule saved")
	return &ScrapeResult{Stats: stats, Written: true}, nil
}
