// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ManuGH/sportsguide/internal/jobs"
	"github.com/ManuGH/sportsguide/internal/version"
)

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newScrapeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the provider canvas and write the normalized schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			res, err := jobs.Scrape(ctx, cfg, jobs.NewClient(cfg))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var nowFlag string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build the playlist, guide and preview from the saved schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if nowFlag != "" {
				parsed, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return &exitCodeError{code: 2, err: fmt.Errorf("invalid --now: %w", err)}
				}
				now = parsed
			}
			cfg, err := opts.loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			st, err := jobs.Export(ctx, cfg, now)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
	cmd.Flags().StringVar(&nowFlag, "now", "", "anchor time for filler blocks (RFC 3339); defaults to the current time")
	return cmd
}

func newRefreshCmd(opts *rootOptions) *cobra.Command {
	var noFetch bool
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Scrape (unless disabled) and export in one run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if noFetch {
				cfg.FetchOnRefresh = false
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			st, err := jobs.Refresh(ctx, cfg, jobs.NewClient(cfg), jobs.TriggerCLI)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "export the saved schedule without fetching")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), serviceName+" "+version.String())
			return err
		},
	}
}
