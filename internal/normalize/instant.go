// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
const epochMillisThreshold = 1_000_000_000_000

// maxEpochSeconds is 9999-12-31T23:59:59Z; larger values are out of range.
const maxEpochSeconds = 253402300799

// InstantKeys are searched, in order, on mappings before any recursive probing.
var InstantKeys = []string{
	"gameKickOffStartTime",
	"kickoff",
	"start",
	"startTime",
	"iso",
	"utc",
	"epoch",
	"ms",
	"millis",
}

// isoLayouts are the ISO-8601 shapes accepted by parseISO, tried in order.
// Layouts without an offset parse as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// fallbackLayouts mirror the strict patterns tried after ISO parsing fails.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Instant converts v into a UTC instant. It accepts epoch numbers (seconds or
// milliseconds), ISO-8601 strings and nested mappings/sequences containing
// either. ok is false when no instant can be derived.
func Instant(v any) (time.Time, bool) {
	return probe(v, InstantKeys, scalarInstant)
}

// ISO renders Instant(v) as a second-precision RFC 3339 UTC string, or ""
// when unknown.
func ISO(v any) string {
	t, ok := Instant(v)
	if !ok {
		return ""
	}
	return t.Truncate(time.Second).Format(time.RFC3339)
}

func scalarInstant(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		return parseISO(s)
	}
	if f, ok := number(v); ok {
		return fromEpoch(f)
	}
	return time.Time{}, false
}

// fromEpoch interprets f as epoch milliseconds when its magnitude reaches
// epochMillisThreshold, else as epoch seconds.
func fromEpoch(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if math.Abs(f) >= epochMillisThreshold {
		f /= 1000
	}
	if math.Abs(f) > maxEpochSeconds {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	nsec := int64(math.Round(frac*1e6)) * int64(time.Microsecond)
	return time.Unix(int64(sec), nsec).UTC(), true
}

func parseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// number extracts a float64 from the numeric types produced by JSON/YAML
// decoding. Booleans are not numbers.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
