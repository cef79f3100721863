// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ManuGH/sportsguide/internal/config"
	"github.com/ManuGH/sportsguide/internal/version"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate or inspect configuration",
	}
	cmd.AddCommand(newConfigValidateCmd(opts), newConfigDumpCmd(opts))
	return cmd
}

func newConfigValidateCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file strictly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := firstNonEmpty(file, opts.resolvedConfigPath())
			if path == "" {
				return &exitCodeError{code: 2, err: errors.New("--file is required (or set --config / $" + envConfig + ")")}
			}
			if _, err := config.NewLoader(path, version.Version).Load(); err != nil {
				return &exitCodeError{code: 1, err: fmt.Errorf("configuration error in %s: %w", path, err)}
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to YAML configuration file")
	return cmd
}

func newConfigDumpCmd(opts *rootOptions) *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := firstNonEmpty(file, opts.resolvedConfigPath())
			cfg, err := config.NewLoader(path, version.Version).Load()
			if err != nil {
				return &exitCodeError{code: 1, err: err}
			}
			if err := config.Dump(cmd.OutOrStdout(), cfg, format); err != nil {
				if errors.Is(err, config.ErrUnsupportedFormat) {
					return &exitCodeError{code: 2, err: err}
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to YAML configuration file")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}
