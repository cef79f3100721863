// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	xglog "github.com/ManuGH/sportsguide/internal/log"
)

// DefaultWatchDebounce coalesces the burst of events an atomic replace emits.
const DefaultWatchDebounce = 500 * time.Millisecond

// watchFile calls onChange once per burst of writes to path. The parent
// directory is watched so atomic renames onto path are seen. It blocks until
// ctx is cancelled.
func watchFile(ctx context.Context, logger zerolog.Logger, path string, debounce time.Duration, onChange func(context.Context)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	target := filepath.Clean(path)
	dir := filepath.Dir(target)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	logger.Info().
		Str(xglog.FieldEvent, "watch.start").
		Str(xglog.FieldPath, target).
		Dur("debounce", debounce).
		Msg("watching schedule file")

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug().
				Str(xglog.FieldEvent, "watch.event").
				Str("op", ev.Op.String()).
				Msg("schedule file changed")
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Str(xglog.FieldEvent, "watch.error").Msg("file watcher error")
		case <-timer.C:
			onChange(ctx)
		}
	}
}
