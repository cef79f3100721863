// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"strings"
	"time"

	"github.com/ManuGH/sportsguide/internal/metrics"
	"github.com/ManuGH/sportsguide/internal/validate"
)

// Validate checks the resolved configuration and reports every problem at once.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.Directory("dataDir", cfg.DataDir, false)

	v.URL("source.baseURL", cfg.SourceURL, []string{"http", "https"})
	v.NotEmpty("source.channel", cfg.SourceChannel)
	v.NotEmpty("source.locale", cfg.Locale)
	v.NotEmpty("source.storefront", cfg.Storefront)
	v.DurationRange("source.timeout", cfg.SourceTimeout, time.Second, 5*time.Minute)

	v.NotEmpty("export.group", cfg.ExportGroup)
	v.Range("export.baseChannel", cfg.BaseChannel, 1, 99999)
	v.NotEmpty("export.idPrefix", cfg.IDPrefix)
	v.DurationRange("export.fillerBase", cfg.FillerBase, time.Minute, 2*time.Hour)
	v.Timezone("export.timezone", cfg.Timezone)
	if cfg.XTVGURL != "" {
		v.URL("export.xTvgURL", cfg.XTVGURL, []string{"http", "https"})
	}

	v.FileName("files.schedule", cfg.ScheduleFile)
	v.FileName("files.rawCanvas", cfg.RawCanvasFile)
	v.FileName("files.playlist", cfg.PlaylistFile)
	v.FileName("files.xmltv", cfg.XMLTVFile)
	v.FileName("files.preview", cfg.PreviewFile)

	v.ListenAddr("server.listen", cfg.ListenAddr)
	v.DurationRange("server.refreshInterval", cfg.RefreshInterval, time.Minute, 24*time.Hour)
	v.Range("server.rateLimit", cfg.RefreshRateLimit, 1, 600)
	v.DurationRange("server.shutdownTimeout", cfg.ShutdownTimeout, time.Second, 5*time.Minute)
	if cfg.MetricsListenAddr != "" {
		v.ListenAddr("metrics.listen", cfg.MetricsListenAddr)
	}

	if cfg.TelemetryEnabled {
		v.OneOf("telemetry.exporter", cfg.TelemetryExporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.TelemetryEndpoint)
		if cfg.TelemetrySampling < 0 || cfg.TelemetrySampling > 1 {
			v.AddError("telemetry.samplingRate", "must be between 0 and 1", cfg.TelemetrySampling)
		}
	}

	v.OneOf("log.level", strings.ToLower(strings.TrimSpace(cfg.LogLevel)), validate.LogLevels)
	v.NonNegative("log.maxSizeMB", cfg.LogMaxSizeMB)
	v.NonNegative("log.maxBackups", cfg.LogMaxBackups)

	for range v.Errors() {
		metrics.IncConfigValidationError()
	}
	return v.Err()
}
