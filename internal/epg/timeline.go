// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/sportsguide/internal/normalize"
)

const (
	// MaxBlock caps the length of any single programme block.
	MaxBlock = 2 * time.Hour
	// DefaultDuration is assumed when an event has neither end nor duration.
	DefaultDuration = 2 * time.Hour
	// DefaultFillerBase is the preferred filler block length.
	DefaultFillerBase = time.Hour
	// PostWindow is how long POST filler extends past the event.
	PostWindow = 4 * time.Hour
	// PreLead is how far before the current grid mark PRE filler starts.
	PreLead = 30 * time.Minute
	// MaxPreWindow bounds PRE filler for events far in the future. Beyond it
	// PRE starts MaxPreWindow (floored to the grid) before the event.
	MaxPreWindow = 7 * 24 * time.Hour

	TitlePre  = "Event not started"
	TitlePost = "Event ended"
)

// DefaultCategories are applied to the real event block.
var DefaultCategories = []string{"MLS", "Soccer", "Sports", "Sports event"}

// Kind tags a block as filler before the event, the event itself or filler after it.
type Kind string

const (
	KindPre   Kind = "pre"
	KindEvent Kind = "event"
	KindPost  Kind = "post"
)

// Block is a single guide entry on one channel.
type Block struct {
	ChannelID  string
	Start      time.Time
	Stop       time.Time
	Title      string
	SubTitle   string
	Desc       string
	Categories []string
	Live       bool
	Kind       Kind
}

// Span is a half-open interval [Start, Stop).
type Span struct {
	Start time.Time
	Stop  time.Time
}

// Duration returns Stop - Start.
func (s Span) Duration() time.Duration { return s.Stop.Sub(s.Start) }

// Event carries the guide-relevant fields of one match. Zero Start or End
// means unknown; Duration <= 0 means unknown.
type Event struct {
	Title      string
	ShortTitle string
	SportName  string
	Type       string
	Hero       string
	Venue      string
	Home       string
	Away       string
	Start      time.Time
	End        time.Time
	Duration   time.Duration
}

// Options tunes timeline construction.
type Options struct {
	// FillerBase is the preferred filler block length. Non-positive values
	// fall back to DefaultFillerBase; values above MaxBlock are capped.
	FillerBase time.Duration
	// Location renders the local start time in PRE descriptions. nil means time.Local.
	Location *time.Location
	// Categories for the event block. nil means DefaultCategories.
	Categories []string
}

func (o Options) fillerBase() time.Duration {
	if o.FillerBase <= 0 {
		return DefaultFillerBase
	}
	if o.FillerBase > MaxBlock {
		return MaxBlock
	}
	return o.FillerBase
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) categories() []string {
	if o.Categories == nil {
		return DefaultCategories
	}
	return o.Categories
}

// Window resolves the real event interval. A missing start is replaced by now.
// The stop is the explicit end, else start plus the known duration, else
// start plus DefaultDuration. A stop not after start becomes start plus
// DefaultDuration.
func Window(ev Event, now time.Time) Span {
	start := ev.Start
	if start.IsZero() {
		start = now
	}
	start = start.UTC()

	var stop time.Time
	switch {
	case !ev.End.IsZero():
		stop = ev.End.UTC()
	case ev.Duration > 0:
		stop = start.Add(ev.Duration)
	default:
		stop = start.Add(DefaultDuration)
	}
	if !stop.After(start) {
		stop = start.Add(DefaultDuration)
	}
	return Span{Start: start, Stop: stop}
}

// PreAnchor is where PRE filler begins for a guide generated at now.
func PreAnchor(now time.Time) time.Time {
	return normalize.Floor30(now.UTC()).Add(-PreLead)
}

// Tile splits [start, end) into consecutive spans of base length, each capped
// at MaxBlock, the last one truncated at end. Spans are not re-aligned to the
// grid. An empty or inverted window yields no spans.
func Tile(start, end time.Time, base time.Duration) []Span {
	if !start.Before(end) {
		return nil
	}
	if base <= 0 {
		base = DefaultFillerBase
	}
	if base > MaxBlock {
		base = MaxBlock
	}

	spans := make([]Span, 0, int(end.Sub(start)/base)+1)
	for t := start; t.Before(end); {
		next := t.Add(base)
		if next.After(end) {
			next = end
		}
		spans = append(spans, Span{Start: t, Stop: next})
		t = next
	}
	return spans
}

// BuildTimeline returns the ordered PRE, event and POST blocks of one channel.
func BuildTimeline(channelID string, ev Event, now time.Time, opts Options) []Block {
	win := Window(ev, now)
	base := opts.fillerBase()
	var blocks []Block

	preStart := PreAnchor(now)
	if win.Start.Sub(preStart) > MaxPreWindow {
		preStart = normalize.Floor30(win.Start.UTC().Add(-MaxPreWindow))
	}
	if win.Start.After(preStart) {
		desc := fmt.Sprintf("%s starts %s", ev.Title, PrettyLocal(win.Start, opts.location()))
		for _, s := range Tile(preStart, win.Start, base) {
			blocks = append(blocks, Block{
				ChannelID: channelID,
				Start:     s.Start,
				Stop:      s.Stop,
				Title:     TitlePre,
				Desc:      desc,
				Kind:      KindPre,
			})
		}
	}

	blocks = append(blocks, Block{
		ChannelID:  channelID,
		Start:      win.Start,
		Stop:       win.Stop,
		Title:      ev.Title,
		SubTitle:   Subtitle(ev),
		Desc:       Description(ev),
		Categories: opts.categories(),
		Live:       true,
		Kind:       KindEvent,
	})

	postStart := normalize.Ceil30(win.Stop)
	for _, s := range Tile(postStart, postStart.Add(PostWindow), base) {
		blocks = append(blocks, Block{
			ChannelID: channelID,
			Start:     s.Start,
			Stop:      s.Stop,
			Title:     TitlePost,
			Kind:      KindPost,
		})
	}
	return blocks
}

// Subtitle renders "{away} at {home}" when either team is known.
func Subtitle(ev Event) string {
	if ev.Home == "" && ev.Away == "" {
		return ""
	}
	return ev.Away + " at " + ev.Home
}

// Description composes the event description from the short title, sport
// and type, prefixed by the hero text and suffixed by the venue.
func Description(ev Event) string {
	var bits []string
	for _, b := range []string{ev.ShortTitle, ev.SportName, ev.Type} {
		if b != "" {
			bits = append(bits, b)
		}
	}
	desc := strings.Join(bits, " · ")

	if hero := strings.TrimSpace(ev.Hero); hero != "" {
		if desc != "" {
			desc = hero + " — " + desc
		} else {
			desc = hero
		}
	}
	if ev.Venue != "" {
		if desc != "" {
			desc += " @ " + ev.Venue
		} else {
			desc = "@ " + ev.Venue
		}
	}
	return desc
}

// PrettyLocal renders t as e.g. "Thursday 8:30 PM EDT" in loc.
func PrettyLocal(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("Monday 3:04 PM MST")
}
