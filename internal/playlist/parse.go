// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playlist

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMissingHeader is returned by Parse for content without #EXTM3U.
var ErrMissingHeader = errors.New("playlist: missing #EXTM3U header")

// Playlist is a parsed extended M3U document.
type Playlist struct {
	XTvgURL string
	Items   []Item
}

// Parse reads an extended M3U playlist. Entries without a URL line are
// dropped, matching what players do.
func Parse(content string) (*Playlist, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) == 0 || !strings.HasPrefix(strings.TrimSpace(lines[0]), "#EXTM3U") {
		return nil, ErrMissingHeader
	}

	p := &Playlist{}
	header, _ := parseAttrs(strings.TrimPrefix(strings.TrimSpace(lines[0]), "#EXTM3U"))
	p.XTvgURL = header["x-tvg-url"]

	var current *Item
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "#EXTINF:"):
			current = parseExtinf(line)
		case line == "" || strings.HasPrefix(line, "#"):
		case current != nil:
			current.URL = line
			p.Items = append(p.Items, *current)
			current = nil
		}
	}
	return p, nil
}

// parseExtinf parses `#EXTINF:-1 k="v" ...,Name`.
func parseExtinf(line string) *Item {
	rest := strings.TrimPrefix(line, "#EXTINF:")
	// skip the duration
	if i := strings.IndexAny(rest, " ,"); i >= 0 {
		rest = rest[i:]
	} else {
		rest = ""
	}
	attrs, name := parseAttrs(rest)

	it := &Item{
		Name:  strings.TrimSpace(name),
		TvgID: attrs["tvg-id"],
		Group: attrs["group-title"],
	}
	if n, err := strconv.Atoi(attrs["tvg-chno"]); err == nil {
		it.TvgChNo = n
	}
	return it
}

// parseAttrs consumes key="value" pairs up to the first comma outside
// quotes and returns them with the remainder after that comma.
func parseAttrs(s string) (map[string]string, string) {
	attrs := map[string]string{}
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return attrs, ""
		}
		if s[0] == ',' {
			return attrs, s[1:]
		}
		eq := strings.Index(s, `="`)
		if eq <= 0 {
			// bare token; skip it
			if i := strings.IndexAny(s, " ,"); i >= 0 {
				s = s[i:]
				continue
			}
			return attrs, ""
		}
		key := s[:eq]
		s = s[eq+2:]
		end := strings.IndexByte(s, '"')
		if end < 0 {
			attrs[key] = s
			return attrs, ""
		}
		attrs[key] = s[:end]
		s = s[end+1:]
	}
}
