// SPDX-License-Identifier: MIT

package jobs

import (
	"fmt"
	"os"

	"github.com/ManuGH/sportsguide/internal/epg"
	"github.com/ManuGH/sportsguide/internal/playlist"
)

// validatePlaylist re-parses a written playlist and checks its entry count.
func validatePlaylist(path string, want int) error {
	// #nosec G304 -- path is derived from the validated data directory
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read playlist: %w", err)
	}
	p, err := playlist.Parse(string(data))
	if err != nil {
		return fmt.Errorf("playlist %s: %w", path, err)
	}
	if len(p.Items) != want {
		return fmt.Errorf("playlist %s: %d entries, want %d", path, len(p.Items), want)
	}
	return nil
}

// validateGuide re-parses a written guide with the hardened decoder and
// checks the element counts.
func validateGuide(path string, channels, programmes int) error {
	// #nosec G304 -- path is derived from the validated data directory
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open guide: %w", err)
	}
	defer func() { _ = f.Close() }()

	tv, err := epg.ParseXMLTV(f)
	if err != nil {
		return err
	}
	if len(tv.Channels) != channels || len(tv.Programs) != programmes {
		return fmt.Errorf("guide %s: %d channels/%d programmes, want %d/%d",
			path, len(tv.Channels), len(tv.Programs), channels, programmes)
	}
	return nil
}
