// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ToFileConfig maps a resolved configuration back to its YAML shape with
// every field populated.
func ToFileConfig(cfg AppConfig) FileConfig {
	return FileConfig{
		DataDir: cfg.DataDir,
		Source: SourceConfig{
			BaseURL:    cfg.SourceURL,
			Channel:    cfg.SourceChannel,
			UTSK:       cfg.UTSK,
			UTSCF:      cfg.UTSCF,
			Locale:     cfg.Locale,
			Storefront: cfg.Storefront,
			Timeout:    cfg.SourceTimeout.String(),
		},
		Export: ExportConfig{
			Group:       cfg.ExportGroup,
			BaseChannel: intPtr(cfg.BaseChannel),
			IDPrefix:    cfg.IDPrefix,
			Generator:   cfg.Generator,
			Categories:  cfg.Categories,
			FillerBase:  cfg.FillerBase.String(),
			Timezone:    cfg.Timezone,
			Preview:     boolPtr(cfg.PreviewEnabled),
			XTVGURL:     cfg.XTVGURL,
		},
		Files: FilesConfig{
			Schedule:  cfg.ScheduleFile,
			RawCanvas: cfg.RawCanvasFile,
			Playlist:  cfg.PlaylistFile,
			XMLTV:     cfg.XMLTVFile,
			Preview:   cfg.PreviewFile,
		},
		Server: ServerFile{
			Listen:          cfg.ListenAddr,
			RefreshInterval: cfg.RefreshInterval.String(),
			WatchSource:     boolPtr(cfg.WatchSource),
			Fetch:           boolPtr(cfg.FetchOnRefresh),
			RateLimit:       intPtr(cfg.RefreshRateLimit),
			ShutdownTimeout: cfg.ShutdownTimeout.String(),
		},
		Metrics: MetricsConfig{Listen: cfg.MetricsListenAddr},
		Telemetry: TelemetryConfig{
			Enabled:      boolPtr(cfg.TelemetryEnabled),
			Exporter:     cfg.TelemetryExporter,
			Endpoint:     cfg.TelemetryEndpoint,
			SamplingRate: &cfg.TelemetrySampling,
			Environment:  cfg.TelemetryEnv,
		},
		Log: LogConfig{
			Level:      cfg.LogLevel,
			File:       cfg.LogFile,
			MaxSizeMB:  intPtr(cfg.LogMaxSizeMB),
			MaxBackups: intPtr(cfg.LogMaxBackups),
		},
	}
}

// Dump writes cfg in the given format ("yaml" or "json") with provider
// tokens masked.
func Dump(w io.Writer, cfg AppConfig, format string) error {
	raw, err := yaml.Marshal(ToFileConfig(cfg))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("reshape config: %w", err)
	}
	masked := MaskSecrets(tree)

	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(masked); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(masked)
	}
	return fmt.Errorf("%w: %q (want yaml or json)", ErrUnsupportedFormat, format)
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
