// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// mergeFileConfig applies every field the file sets on top of cfg.
func mergeFileConfig(cfg *AppConfig, fc *FileConfig) error {
	setString(&cfg.DataDir, fc.DataDir)

	setString(&cfg.SourceURL, fc.Source.BaseURL)
	setString(&cfg.SourceChannel, fc.Source.Channel)
	setString(&cfg.UTSK, fc.Source.UTSK)
	setString(&cfg.UTSCF, fc.Source.UTSCF)
	setString(&cfg.Locale, fc.Source.Locale)
	setString(&cfg.Storefront, fc.Source.Storefront)
	if err := setDuration(&cfg.SourceTimeout, "source.timeout", fc.Source.Timeout); err != nil {
		return err
	}

	setString(&cfg.ExportGroup, fc.Export.Group)
	setInt(&cfg.BaseChannel, fc.Export.BaseChannel)
	setString(&cfg.IDPrefix, fc.Export.IDPrefix)
	setString(&cfg.Generator, fc.Export.Generator)
	if fc.Export.Categories != nil {
		cfg.Categories = append([]string(nil), fc.Export.Categories...)
	}
	if err := setDuration(&cfg.FillerBase, "export.fillerBase", fc.Export.FillerBase); err != nil {
		return err
	}
	setString(&cfg.Timezone, fc.Export.Timezone)
	setBool(&cfg.PreviewEnabled, fc.Export.Preview)
	setString(&cfg.XTVGURL, fc.Export.XTVGURL)

	setString(&cfg.ScheduleFile, fc.Files.Schedule)
	setString(&cfg.RawCanvasFile, fc.Files.RawCanvas)
	setString(&cfg.PlaylistFile, fc.Files.Playlist)
	setString(&cfg.XMLTVFile, fc.Files.XMLTV)
	setString(&cfg.PreviewFile, fc.Files.Preview)

	setString(&cfg.ListenAddr, fc.Server.Listen)
	if err := setDuration(&cfg.RefreshInterval, "server.refreshInterval", fc.Server.RefreshInterval); err != nil {
		return err
	}
	setBool(&cfg.WatchSource, fc.Server.WatchSource)
	setBool(&cfg.FetchOnRefresh, fc.Server.Fetch)
	setInt(&cfg.RefreshRateLimit, fc.Server.RateLimit)
	if err := setDuration(&cfg.ShutdownTimeout, "server.shutdownTimeout", fc.Server.ShutdownTimeout); err != nil {
		return err
	}

	setString(&cfg.MetricsListenAddr, fc.Metrics.Listen)

	setBool(&cfg.TelemetryEnabled, fc.Telemetry.Enabled)
	setString(&cfg.TelemetryExporter, fc.Telemetry.Exporter)
	setString(&cfg.TelemetryEndpoint, fc.Telemetry.Endpoint)
	if fc.Telemetry.SamplingRate != nil {
		cfg.TelemetrySampling = *fc.Telemetry.SamplingRate
	}
	setString(&cfg.TelemetryEnv, fc.Telemetry.Environment)

	setString(&cfg.LogLevel, fc.Log.Level)
	setString(&cfg.LogFile, fc.Log.File)
	setInt(&cfg.LogMaxSizeMB, fc.Log.MaxSizeMB)
	setInt(&cfg.LogMaxBackups, fc.Log.MaxBackups)
	return nil
}

// serverEnvPrefix keys are read by ParseServerConfigForApp, not the loader.
const serverEnvPrefix = EnvPrefix + "SERVER_"

// mergeEnvConfig overrides cfg with SPORTSGUIDE_* variables.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.DataDir = l.envString("SPORTSGUIDE_DATA", cfg.DataDir)

	cfg.SourceURL = l.envString("SPORTSGUIDE_SOURCE_URL", cfg.SourceURL)
	cfg.SourceChannel = l.envString("SPORTSGUIDE_SOURCE_CHANNEL", cfg.SourceChannel)
	cfg.UTSK = l.envString("SPORTSGUIDE_UTSK", cfg.UTSK)
	cfg.UTSCF = l.envString("SPORTSGUIDE_UTSCF", cfg.UTSCF)
	cfg.Locale = l.envString("SPORTSGUIDE_LOCALE", cfg.Locale)
	cfg.Storefront = l.envString("SPORTSGUIDE_STOREFRONT", cfg.Storefront)
	cfg.SourceTimeout = l.envDuration("SPORTSGUIDE_SOURCE_TIMEOUT", cfg.SourceTimeout)

	cfg.ExportGroup = l.envString("SPORTSGUIDE_GROUP", cfg.ExportGroup)
	cfg.BaseChannel = l.envInt("SPORTSGUIDE_BASE_CHANNEL", cfg.BaseChannel)
	cfg.IDPrefix = l.envString("SPORTSGUIDE_ID_PREFIX", cfg.IDPrefix)
	cfg.Generator = l.envString("SPORTSGUIDE_GENERATOR", cfg.Generator)
	cfg.Categories = l.envList("SPORTSGUIDE_CATEGORIES", cfg.Categories)
	cfg.FillerBase = l.envDuration("SPORTSGUIDE_FILLER_BASE", cfg.FillerBase)
	cfg.Timezone = l.envString("SPORTSGUIDE_TZ", cfg.Timezone)
	cfg.PreviewEnabled = l.envBool("SPORTSGUIDE_PREVIEW", cfg.PreviewEnabled)
	cfg.XTVGURL = l.envString("SPORTSGUIDE_X_TVG_URL", cfg.XTVGURL)

	cfg.ListenAddr = l.envString("SPORTSGUIDE_LISTEN", cfg.ListenAddr)
	cfg.RefreshInterval = l.envDuration("SPORTSGUIDE_REFRESH_INTERVAL", cfg.RefreshInterval)
	cfg.WatchSource = l.envBool("SPORTSGUIDE_WATCH", cfg.WatchSource)
	cfg.FetchOnRefresh = l.envBool("SPORTSGUIDE_FETCH", cfg.FetchOnRefresh)
	cfg.RefreshRateLimit = l.envInt("SPORTSGUIDE_RATE_LIMIT", cfg.RefreshRateLimit)
	cfg.ShutdownTimeout = l.envDuration("SPORTSGUIDE_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MetricsListenAddr = l.envString("SPORTSGUIDE_METRICS_LISTEN", cfg.MetricsListenAddr)

	cfg.TelemetryEnabled = l.envBool("SPORTSGUIDE_TELEMETRY_ENABLED", cfg.TelemetryEnabled)
	cfg.TelemetryExporter = l.envString("SPORTSGUIDE_TELEMETRY_EXPORTER", cfg.TelemetryExporter)
	cfg.TelemetryEndpoint = l.envString("SPORTSGUIDE_OTLP_ENDPOINT", cfg.TelemetryEndpoint)
	cfg.TelemetrySampling = l.envFloat("SPORTSGUIDE_SAMPLING_RATE", cfg.TelemetrySampling)
	cfg.TelemetryEnv = l.envString("SPORTSGUIDE_ENVIRONMENT", cfg.TelemetryEnv)

	// LOG_LEVEL is honoured for parity with other services; the prefixed key wins.
	cfg.LogLevel = l.envString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogLevel = l.envString("SPORTSGUIDE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = l.envString("SPORTSGUIDE_LOG_FILE", cfg.LogFile)
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envList(key string, defaultVal []string) []string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseList(key, defaultVal)
}

// UnknownEnvKeys lists SPORTSGUIDE_* variables in the environment that the
// loader never consumed. Call after Load.
func (l *Loader) UnknownEnvKeys() []string {
	var out []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, EnvPrefix) || strings.HasPrefix(key, serverEnvPrefix) {
			continue
		}
		if _, ok := l.ConsumedEnvKeys[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, field, v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", field, v, err)
	}
	*dst = d
	return nil
}
