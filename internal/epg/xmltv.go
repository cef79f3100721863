// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package epg builds the XMLTV programme guide.
package epg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"
)

// TimeLayout is the XMLTV start/stop layout. Times are always rendered in UTC.
const TimeLayout = "20060102150405 -0700"

// Lang is the language tag applied to every text element.
const Lang = "en"

// maxXMLSize bounds ParseXMLTV input.
const maxXMLSize = 50 * 1024 * 1024

type TV struct {
	XMLName   xml.Name    `xml:"tv"`
	Generator string      `xml:"generator-info-name,attr,omitempty"`
	Channels  []Channel   `xml:"channel"`
	Programs  []Programme `xml:"programme"`
}

type Channel struct {
	ID          string   `xml:"id,attr"`
	DisplayName []string `xml:"display-name"`
}

type Programme struct {
	Channel    string `xml:"channel,attr"`
	Start      string `xml:"start,attr"`
	Stop       string `xml:"stop,attr"`
	Title      Text   `xml:"title"`
	SubTitle   *Text  `xml:"sub-title,omitempty"`
	Desc       *Text  `xml:"desc,omitempty"`
	Categories []Text `xml:"category"`
	Live       *Flag  `xml:"live,omitempty"`
}

// Text is a language-tagged character data element.
type Text struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Flag is an empty marker element such as <live>.
type Flag struct{}

func text(s string) Text { return Text{Lang: Lang, Value: s} }

func optionalText(s string) *Text {
	if s == "" {
		return nil
	}
	t := text(s)
	return &t
}

// FormatTime formats t in XMLTV form: YYYYMMDDHHMMSS +0000.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime is the inverse of FormatTime.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// WriteXMLTV renders tv as an indented XMLTV document with an XML header.
func WriteXMLTV(w io.Writer, tv *TV) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(tv); err != nil {
		return fmt.Errorf("encode xmltv: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ParseXMLTV decodes an XMLTV document. Input is size-limited and entity
// expansion is disabled.
func ParseXMLTV(r io.Reader) (*TV, error) {
	var doc TV
	dec := xml.NewDecoder(io.LimitReader(r, maxXMLSize))
	dec.Strict = true
	dec.Entity = make(map[string]string)

	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode xmltv: %w", err)
	}
	return &doc, nil
}
