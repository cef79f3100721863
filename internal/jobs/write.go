// SPDX-License-Identifier: MIT

package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/sportsguide/internal/epg"
	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/playlist"
	"github.com/ManuGH/sportsguide/internal/schedule"
)

// writeAtomic writes path with full durability guarantees using renameio.
// Readers see either the previous file or the complete new one.
func writeAtomic(ctx context.Context, path, kind string, render func(io.Writer) error) error {
	logger := xglog.FromContext(ctx)

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending %s file: %w", kind, err)
	}
	defer func() {
		// Cleanup on error - renameio removes temp file if not committed
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str(xglog.FieldPath, path).Msgf("cleanup pending %s file", kind)
		}
	}()

	if err := render(pendingFile); err != nil {
		return fmt.Errorf("write %s data: %w", kind, err)
	}

	// CloseAtomicallyReplace: fsync + rename (durable + atomic)
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s file: %w", kind, err)
	}
	return nil
}

func writeM3U(ctx context.Context, path string, items []playlist.Item, xTvgURL string) error {
	return writeAtomic(ctx, path, "M3U", func(w io.Writer) error {
		return playlist.WriteM3U(w, items, xTvgURL)
	})
}

func writeXMLTV(ctx context.Context, path string, tv *epg.TV) error {
	return writeAtomic(ctx, path, "XMLTV", func(w io.Writer) error {
		return epg.WriteXMLTV(w, tv)
	})
}

func writePreview(ctx context.Context, path string, p schedule.Preview) error {
	return writeAtomic(ctx, path, "preview", func(w io.Writer) error {
		return schedule.WritePreview(w, p)
	})
}

// writeRawCanvas stores the provider document re-indented, keeping its key order.
func writeRawCanvas(ctx context.Context, path string, raw []byte) error {
	return writeAtomic(ctx, path, "raw canvas", func(w io.Writer) error {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(w)
		return err
	})
}

func writeSchedule(ctx context.Context, path string, records []schedule.Record) error {
	return writeAtomic(ctx, path, "schedule", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records)
	})
}
