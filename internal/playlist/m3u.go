// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package playlist renders the per-match M3U channel list.
package playlist

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// DefaultName is used for entries without a title.
const DefaultName = "MLS Match"

type Item struct {
	Name    string
	TvgID   string
	TvgChNo int
	Group   string
	URL     string
}

var attrReplacer = strings.NewReplacer(`"`, "'", "\r", " ", "\n", " ")
var lineReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// WriteM3U writes an extended M3U playlist. Items without a URL are skipped.
// A non-empty xTvgURL is advertised in the header.
func WriteM3U(w io.Writer, items []Item, xTvgURL string) error {
	buf := &bytes.Buffer{}
	if xTvgURL != "" {
		fmt.Fprintf(buf, `#EXTM3U x-tvg-url="%s"`+"\n", attrReplacer.Replace(xTvgURL))
	} else {
		buf.WriteString("#EXTM3U\n")
	}
	for _, it := range items {
		if it.URL == "" {
			continue
		}
		name := it.Name
		if name == "" {
			name = DefaultName
		}
		fmt.Fprintf(buf,
			`#EXTINF:-1 tvg-id="%s" tvg-name="%s" tvg-chno="%d" group-title="%s",%s`+"\n",
			attrReplacer.Replace(it.TvgID), attrReplacer.Replace(name), it.TvgChNo,
			attrReplacer.Replace(it.Group), lineReplacer.Replace(name),
		)
		buf.WriteString(lineReplacer.Replace(it.URL) + "\n")
	}
	_, err := io.Copy(w, buf)
	return err
}

// Count returns how many items WriteM3U would emit.
func Count(items []Item) int {
	n := 0
	for _, it := range items {
		if it.URL != "" {
			n++
		}
	}
	return n
}
