// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import "time"

// GridStep is the guide grid resolution.
const GridStep = 30 * time.Minute

// Floor30 rounds t down to the nearest :00 or :30 wall-clock mark in t's
// location, zeroing seconds and sub-seconds.
func Floor30(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// Ceil30 rounds t up to the next :00 or :30 mark. Aligned instants are
// returned unchanged.
func Ceil30(t time.Time) time.Time {
	f := Floor30(t)
	if f.Equal(t) {
		return t
	}
	return f.Add(GridStep)
}

// OnGrid reports whether t sits exactly on a :00 or :30 mark.
func OnGrid(t time.Time) bool {
	return Floor30(t).Equal(t)
}
