// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/ManuGH/sportsguide/internal/canvas"
	"github.com/ManuGH/sportsguide/internal/epg"
	"github.com/ManuGH/sportsguide/internal/schedule"
)

const (
	DefaultDataDir         = "out"
	DefaultScheduleFile    = "mls_schedule.json"
	DefaultRawCanvasFile   = "raw_canvas.json"
	DefaultPlaylistFile    = "mls_tvapple_control.m3u"
	DefaultXMLTVFile       = "mls_tvapple.xml"
	DefaultPreviewFile     = "mls_deeplinks_preview.json"
	DefaultListenAddr      = ":8080"
	DefaultRefreshInterval = 15 * time.Minute
	DefaultRateLimit       = 10
	DefaultShutdownTimeout = 15 * time.Second
	DefaultLogMaxSizeMB    = 50
	DefaultLogMaxBackups   = 3

	DefaultTelemetryExporter = "grpc"
	DefaultTelemetryEndpoint = "localhost:4317"
	DefaultTelemetryEnv      = "production"
)

// Defaults returns the configuration used when neither file nor environment
// set a value.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:           DefaultDataDir,
		SourceURL:         canvas.DefaultBaseURL,
		SourceChannel:     canvas.DefaultChannel,
		Locale:            canvas.DefaultLocale,
		Storefront:        canvas.DefaultStorefront,
		SourceTimeout:     canvas.DefaultTimeout,
		ExportGroup:       schedule.DefaultGroup,
		BaseChannel:       schedule.DefaultBaseChannel,
		IDPrefix:          schedule.DefaultIDPrefix,
		Generator:         epg.DefaultGenerator,
		Categories:        append([]string(nil), epg.DefaultCategories...),
		FillerBase:        epg.DefaultFillerBase,
		Timezone:          "Local",
		PreviewEnabled:    true,
		ScheduleFile:      DefaultScheduleFile,
		RawCanvasFile:     DefaultRawCanvasFile,
		PlaylistFile:      DefaultPlaylistFile,
		XMLTVFile:         DefaultXMLTVFile,
		PreviewFile:       DefaultPreviewFile,
		ListenAddr:        DefaultListenAddr,
		RefreshInterval:   DefaultRefreshInterval,
		FetchOnRefresh:    true,
		RefreshRateLimit:  DefaultRateLimit,
		ShutdownTimeout:   DefaultShutdownTimeout,
		TelemetryExporter: DefaultTelemetryExporter,
		TelemetryEndpoint: DefaultTelemetryEndpoint,
		TelemetrySampling: 1.0,
		TelemetryEnv:      DefaultTelemetryEnv,
		LogLevel:          "info",
		LogMaxSizeMB:      DefaultLogMaxSizeMB,
		LogMaxBackups:     DefaultLogMaxBackups,
	}
}
