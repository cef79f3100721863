// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ManuGH/sportsguide/internal/api"
	"github.com/ManuGH/sportsguide/internal/config"
	"github.com/ManuGH/sportsguide/internal/daemon"
	"github.com/ManuGH/sportsguide/internal/health"
	"github.com/ManuGH/sportsguide/internal/jobs"
	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/telemetry"
	"github.com/ManuGH/sportsguide/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var skipStartup bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the artifacts over HTTP and refresh them on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = xglog.Close() }()

			if err := health.PerformStartupChecks(cfg); err != nil {
				return &exitCodeError{code: 2, err: err}
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			logger := xglog.WithComponent("daemon")
			tp, err := telemetry.NewProvider(ctx, telemetry.Config{
				Enabled:        cfg.TelemetryEnabled,
				ServiceName:    "sportsguide",
				ServiceVersion: version.Version,
				Environment:    cfg.TelemetryEnv,
				ExporterType:   cfg.TelemetryExporter,
				Endpoint:       cfg.TelemetryEndpoint,
				SamplingRate:   cfg.TelemetrySampling,
			})
			if err != nil {
				logger.Warn().Err(err).Msg("failed to initialize telemetry, continuing without tracing")
			} else if cfg.TelemetryEnabled {
				logger.Info().
					Str("exporter", cfg.TelemetryExporter).
					Str("endpoint", cfg.TelemetryEndpoint).
					Float64("sampling_rate", cfg.TelemetrySampling).
					Msg("telemetry initialized")
			}

			srv := api.New(cfg, api.WithClient(jobs.Guard(jobs.NewClient(cfg), jobs.NewBreaker())))
			deps := daemon.Deps{
				Logger:     logger,
				APIHandler: srv.Handler(),
			}
			if cfg.MetricsListenAddr != "" {
				deps.MetricsHandler = promhttp.Handler()
				deps.MetricsAddr = cfg.MetricsListenAddr
			}
			mgr, err := daemon.NewManager(config.ParseServerConfigForApp(cfg), deps)
			if err != nil {
				return err
			}
			mgr.RegisterShutdownHook("telemetry", tp.Shutdown)

			appOpts := daemon.AppOptions{
				RefreshInterval:    cfg.RefreshInterval,
				SkipStartupRefresh: skipStartup,
			}
			if cfg.WatchSource {
				appOpts.WatchPath = jobs.PathsFor(cfg).Schedule
			}
			return daemon.NewApp(logger, mgr, srv, appOpts).Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&skipStartup, "no-startup-refresh", false, "serve existing artifacts without refreshing first")
	return cmd
}
