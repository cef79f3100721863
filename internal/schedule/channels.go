// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import (
	"fmt"
	"strconv"
)

const (
	DefaultBaseChannel = 9910
	DefaultIDPrefix    = "mls.apple"
	DefaultGroup       = "MLS - AppleTV"
	fallbackTitle      = "MLS Match"
)

// Numbering controls how summaries map to channels.
type Numbering struct {
	Base     int
	IDPrefix string
	Group    string
}

// Channel is one guide/playlist channel carrying a single match.
type Channel struct {
	Number  int
	ID      string
	Name    string
	Group   string
	Summary MatchSummary
}

// DisplayNames are the XMLTV display names: title, number, group.
func (c Channel) DisplayNames() []string {
	return []string{c.Name, strconv.Itoa(c.Number), c.Group}
}

// AssignChannels numbers summaries consecutively from n.Base. Every summary
// gets a channel, so ids stay aligned between playlist and guide.
func AssignChannels(summaries []MatchSummary, n Numbering) []Channel {
	if n.IDPrefix == "" {
		n.IDPrefix = DefaultIDPrefix
	}
	out := make([]Channel, 0, len(summaries))
	for i, s := range summaries {
		num := n.Base + i
		name := s.Title
		if name == "" {
			name = fallbackTitle
		}
		out = append(out, Channel{
			Number:  num,
			ID:      fmt.Sprintf("%s.%d", n.IDPrefix, num),
			Name:    name,
			Group:   n.Group,
			Summary: s,
		})
	}
	return out
}
