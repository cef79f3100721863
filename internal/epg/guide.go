// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import "time"

// DefaultGenerator is the generator-info-name used when none is configured.
const DefaultGenerator = "MLS-AppleTV Exporter v0.9"

// Listing pairs a channel declaration with the event it carries.
type Listing struct {
	Channel Channel
	Event   Event
}

// Guide is the result of BuildGuide.
type Guide struct {
	TV     *TV
	Blocks []Block
}

// BuildGuide declares every channel first and then appends the timeline of
// each listing in order. now anchors PRE filler for all channels.
func BuildGuide(generator string, listings []Listing, now time.Time, opts Options) Guide {
	if generator == "" {
		generator = DefaultGenerator
	}
	tv := &TV{
		Generator: generator,
		Channels:  make([]Channel, 0, len(listings)),
		Programs:  []Programme{},
	}
	for _, l := range listings {
		tv.Channels = append(tv.Channels, l.Channel)
	}

	var all []Block
	for _, l := range listings {
		blocks := BuildTimeline(l.Channel.ID, l.Event, now, opts)
		for _, b := range blocks {
			tv.Programs = append(tv.Programs, ProgrammeFromBlock(b))
		}
		all = append(all, blocks...)
	}
	return Guide{TV: tv, Blocks: all}
}

// ProgrammeFromBlock converts a block to its XMLTV element.
func ProgrammeFromBlock(b Block) Programme {
	p := Programme{
		Channel:  b.ChannelID,
		Start:    FormatTime(b.Start),
		Stop:     FormatTime(b.Stop),
		Title:    text(b.Title),
		SubTitle: optionalText(b.SubTitle),
		Desc:     optionalText(b.Desc),
	}
	for _, c := range b.Categories {
		p.Categories = append(p.Categories, text(c))
	}
	if b.Live {
		p.Live = &Flag{}
	}
	return p
}
