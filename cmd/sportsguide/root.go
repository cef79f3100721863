// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ManuGH/sportsguide/internal/config"
	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/validate"
	"github.com/ManuGH/sportsguide/internal/version"
)

const (
	serviceName = "sportsguide"
	envConfig   = config.EnvPrefix + "CONFIG"
)

// exitCodeError lets a command choose the process exit status.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

type rootOptions struct {
	configPath string
	logLevel   string
}

func execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ec *exitCodeError
		if errors.As(err, &ec) {
			return ec.code
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Export the televised MLS schedule as M3U, XMLTV and deeplinks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.logLevel != "" {
				if _, err := validate.ParseLogLevel(opts.logLevel); err != nil {
					return &exitCodeError{code: 2, err: fmt.Errorf("--log-level %q: %w", opts.logLevel, err)}
				}
			}
			// safe defaults until the config is loaded
			xglog.Configure(xglog.Config{
				Level:   firstNonEmpty(opts.logLevel, "info"),
				Output:  stderr,
				Service: serviceName,
				Version: version.Version,
			})
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to config file (YAML); defaults to $"+envConfig)
	pf.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newScrapeCmd(opts),
		newExportCmd(opts),
		newRefreshCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func (o *rootOptions) resolvedConfigPath() string {
	if p := strings.TrimSpace(o.configPath); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(envConfig))
}

// loadConfig loads and validates the effective configuration and
// reconfigures logging from it.
func (o *rootOptions) loadConfig(stderr io.Writer) (config.AppConfig, error) {
	path := o.resolvedConfigPath()
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		return cfg, &exitCodeError{code: 2, err: err}
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	logCfg := xglog.Config{
		Level:   cfg.LogLevel,
		Output:  stderr,
		Service: serviceName,
		Version: cfg.Version,
	}
	if cfg.LogFile != "" {
		logCfg.File = &xglog.FileConfig{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}
	}
	xglog.Reconfigure(logCfg)

	logger := xglog.WithComponent("cli")
	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Info().
		Str(xglog.FieldEvent, "config.loaded").
		Str("source", source).
		Str(xglog.FieldPath, path).
		Str("data_dir", cfg.DataDir).
		Msg("loaded configuration")
	for _, key := range loader.UnknownEnvKeys() {
		logger.Warn().
			Str(xglog.FieldEvent, "config.unknown_env").
			Str("key", key).
			Msg("ignoring unknown environment variable")
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
