// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// FileConfig represents the YAML configuration structure.
// Pointers distinguish "not set" from "explicitly set to zero/false".
type FileConfig struct {
	DataDir   string          `yaml:"dataDir,omitempty"`
	Source    SourceConfig    `yaml:"source,omitempty"`
	Export    ExportConfig    `yaml:"export,omitempty"`
	Files     FilesConfig     `yaml:"files,omitempty"`
	Server    ServerFile      `yaml:"server,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Telemetry TelemetryConfig `yaml:"telemetry,omitempty"`
	Log       LogConfig       `yaml:"log,omitempty"`
}

// SourceConfig holds provider API settings.
type SourceConfig struct {
	BaseURL    string `yaml:"baseURL,omitempty"`
	Channel    string `yaml:"channel,omitempty"`
	UTSK       string `yaml:"utsk,omitempty"`
	UTSCF      string `yaml:"utscf,omitempty"`
	Locale     string `yaml:"locale,omitempty"`
	Storefront string `yaml:"storefront,omitempty"`
	Timeout    string `yaml:"timeout,omitempty"` // e.g. "15s"
}

// ExportConfig holds playlist and guide rendering settings.
type ExportConfig struct {
	Group       string   `yaml:"group,omitempty"`
	BaseChannel *int     `yaml:"baseChannel,omitempty"`
	IDPrefix    string   `yaml:"idPrefix,omitempty"`
	Generator   string   `yaml:"generator,omitempty"`
	Categories  []string `yaml:"categories,omitempty"`
	FillerBase  string   `yaml:"fillerBase,omitempty"` // e.g. "60m"
	Timezone    string   `yaml:"timezone,omitempty"`
	Preview     *bool    `yaml:"preview,omitempty"`
	XTVGURL     string   `yaml:"xTvgURL,omitempty"`
}

// FilesConfig names the artifacts under the data directory.
type FilesConfig struct {
	Schedule  string `yaml:"schedule,omitempty"`
	RawCanvas string `yaml:"rawCanvas,omitempty"`
	Playlist  string `yaml:"playlist,omitempty"`
	XMLTV     string `yaml:"xmltv,omitempty"`
	Preview   string `yaml:"preview,omitempty"`
}

// ServerFile holds daemon settings.
type ServerFile struct {
	Listen          string `yaml:"listen,omitempty"`
	RefreshInterval string `yaml:"refreshInterval,omitempty"`
	WatchSource     *bool  `yaml:"watchSource,omitempty"`
	Fetch           *bool  `yaml:"fetch,omitempty"`
	RateLimit       *int   `yaml:"rateLimit,omitempty"` // requests per minute on POST /api/refresh
	ShutdownTimeout string `yaml:"shutdownTimeout,omitempty"`
}

// MetricsConfig holds Prometheus metrics configuration.
// An empty Listen serves /metrics on the main router.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
}

// TelemetryConfig holds OpenTelemetry tracing configuration.
type TelemetryConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"` // grpc or http
	Endpoint     string   `yaml:"endpoint,omitempty"` // OTLP collector host:port
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
	Environment  string   `yaml:"environment,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `yaml:"level,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  *int   `yaml:"maxSizeMB,omitempty"`
	MaxBackups *int   `yaml:"maxBackups,omitempty"`
}

// AppConfig is the resolved configuration after defaults, file and
// environment have been applied.
type AppConfig struct {
	Version string `json:"-" yaml:"-"`
	DataDir string

	SourceURL         string
	SourceChannel     string
	UTSK              string
	UTSCF             string
	Locale            string
	Storefront        string
	SourceTimeout     time.Duration
	ExportGroup       string
	BaseChannel       int
	IDPrefix          string
	Generator         string
	Categories        []string
	FillerBase        time.Duration
	Timezone          string
	PreviewEnabled    bool
	XTVGURL           string
	ScheduleFile      string
	RawCanvasFile     string
	PlaylistFile      string
	XMLTVFile         string
	PreviewFile       string
	ListenAddr        string
	RefreshInterval   time.Duration
	WatchSource       bool
	FetchOnRefresh    bool
	RefreshRateLimit  int
	ShutdownTimeout   time.Duration
	MetricsListenAddr string
	TelemetryEnabled  bool
	TelemetryExporter string
	TelemetryEndpoint string
	TelemetrySampling float64
	TelemetryEnv      string
	LogLevel          string
	LogFile           string
	LogMaxSizeMB      int
	LogMaxBackups     int
}

// Location resolves the configured time zone, falling back to time.Local.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
