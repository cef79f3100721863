// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import (
	"math"
	"strconv"
	"strings"
)

// durationMillisThreshold: unit-less values at or above it are milliseconds.
const durationMillisThreshold = 10_000_000

// MillisKeys and SecondsKeys name duration fields, probed in this order. The
// value found is still classified by magnitude.
var MillisKeys = []string{"ms", "millis", "milliseconds", "durationMs", "durationMS", "duration_ms", "durationMsValue"}

var SecondsKeys = []string{"s", "sec", "seconds", "durationS", "duration_s", "secondsValue"}

// DurationSeconds converts v into whole seconds. Numbers and numeric strings
// at or above 10,000,000 are taken as milliseconds, smaller ones as seconds.
// Mappings are searched for millisecond keys, then second keys, then every
// value in turn. Unknown, negative or malformed input yields 0.
func DurationSeconds(v any) int {
	switch KindOf(v) {
	case KindMapping:
		m := v.(map[string]any)
		for _, keys := range [][]string{MillisKeys, SecondsKeys} {
			for _, k := range keys {
				if child, ok := m[k]; ok {
					return DurationSeconds(child)
				}
			}
		}
		for _, child := range Children(m) {
			if sec := DurationSeconds(child); sec > 0 {
				return sec
			}
		}
		return 0
	case KindSequence:
		for _, child := range Children(v) {
			if sec := DurationSeconds(child); sec > 0 {
				return sec
			}
		}
		return 0
	}

	f, ok := durationScalar(v)
	if !ok || f <= 0 {
		return 0
	}
	if f >= durationMillisThreshold {
		f /= 1000
	}
	if f > math.MaxInt32 {
		return 0
	}
	return int(math.Floor(f))
}

func durationScalar(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		v = f
	}
	f, ok := number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
