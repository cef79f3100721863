// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/sportsguide/internal/config"
	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/metrics"
	"github.com/ManuGH/sportsguide/internal/telemetry"
)

// tracerName names the tracer for refresh spans.
const tracerName = "sportsguide/jobs"

// Refresh triggers
const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerWatch    = "watch"
	TriggerAPI      = "api"
	TriggerCLI      = "cli"
	TriggerSignal   = "signal"
)

// Refresh optionally scrapes (when a client is given and fetching is
// enabled) and then exports. A failed scrape aborts the run so stale
// artifacts are not rewritten from a partial state.
func Refresh(ctx context.Context, cfg config.AppConfig, client CanvasFetcher, trigger string) (*Status, error) {
	fetch := cfg.FetchOnRefresh && client != nil
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "refresh",
		trace.WithAttributes(telemetry.RefreshAttributes(trigger, fetch)...))
	defer span.End()

	ctx, _ = xglog.NewJobContext(ctx)
	logger := xglog.WithComponentFromContext(ctx, "jobs")
	logger.Info().
		Str(xglog.FieldEvent, "refresh.start").
		Str(xglog.FieldTrigger, trigger).
		Bool("fetch", fetch).
		Msg("starting refresh")

	st, err := runRefresh(ctx, cfg, client)
	metrics.RecordRefresh(trigger, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "refresh failed")
		logger.Error().Err(err).
			Str(xglog.FieldEvent, "refresh.failed").
			Str(xglog.FieldTrigger, trigger).
			Msg("refresh failed")
		return nil, err
	}

	metrics.SetLastSuccess(st.LastRun)
	span.SetAttributes(telemetry.ExportAttributes(st.Matches, st.Channels, st.Programmes)...)
	span.SetStatus(codes.Ok, "")
	logger.Info().
		Str(xglog.FieldEvent, "refresh.success").
		Int(xglog.FieldMatches, st.Matches).
		Int(xglog.FieldChannels, st.Channels).
		Int(xglog.FieldProgrammes, st.Programmes).
		Int64(xglog.FieldDurationMS, st.DurationMS).
		Msg("refresh completed")
	return st, nil
}

func runRefresh(ctx context.Context, cfg config.AppConfig, client CanvasFetcher) (*Status, error) {
	start := time.Now()
	scraped := 0
	if cfg.FetchOnRefresh && client != nil {
		sctx, span := telemetry.Tracer(tracerName).Start(ctx, "refresh.scrape")
		res, err := Scrape(sctx, cfg, client)
		metrics.ObserveStage("scrape", time.Since(start))
		if err != nil {
			endStage(span, "fetch", err)
			return nil, err
		}
		span.SetAttributes(telemetry.ScrapeAttributes(res.Stats.Total, res.Written)...)
		endStage(span, "", nil)
		scraped = res.Stats.Total
	}

	ectx, span := telemetry.Tracer(tracerName).Start(ctx, "refresh.export")
	exportStart := time.Now()
	st, err := Export(ectx, cfg, exportStart)
	metrics.ObserveStage("export", time.Since(exportStart))
	if err != nil {
		endStage(span, "export", err)
		return nil, err
	}
	span.SetAttributes(telemetry.ExportAttributes(st.Matches, st.Channels, st.Programmes)...)
	endStage(span, "", nil)
	st.Scraped = scraped
	st.DurationMS = time.Since(start).Milliseconds()
	return st, nil
}

func endStage(span trace.Span, errorType string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(telemetry.ErrorAttributes(errorType)...)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
