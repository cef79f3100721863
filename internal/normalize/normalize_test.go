// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts.UTC()
}

func TestToken(t *testing.T) {
	assert.Equal(t, "live", Token("  LIVE\u200B "))
	assert.Equal(t, "", Token("\uFEFF"))
}

func TestInstant(t *testing.T) {
	want := mustTime(t, "2025-08-14T20:30:00Z")

	tests := []struct {
		name string
		in   any
		want time.Time
		ok   bool
	}{
		{name: "zulu string", in: "2025-08-14T20:30:00Z", want: want, ok: true},
		{name: "lower z", in: "2025-08-14T20:30:00z", want: want, ok: true},
		{name: "offset string", in: "2025-08-14T16:30:00-04:00", want: want, ok: true},
		{name: "fractional", in: "2025-08-14T20:30:00.000Z", want: want, ok: true},
		{name: "no offset assumed utc", in: "2025-08-14T20:30:00", want: want, ok: true},
		{name: "space separated", in: "2025-08-14 20:30:00", want: want, ok: true},
		{name: "padded", in: "  2025-08-14T20:30:00Z\n", want: want, ok: true},
		{name: "epoch seconds", in: float64(want.Unix()), want: want, ok: true},
		{name: "epoch millis", in: float64(want.UnixMilli()), want: want, ok: true},
		{name: "int seconds", in: want.Unix(), want: want, ok: true},
		{name: "json number", in: json.Number("1755203400000"), want: want, ok: true},
		{name: "priority key", in: map[string]any{"other": "x", "kickoff": "2025-08-14T20:30:00Z"}, want: want, ok: true},
		{name: "first priority key wins", in: map[string]any{"utc": "2030-01-01T00:00:00Z", "start": "2025-08-14T20:30:00Z"}, want: want, ok: true},
		{name: "nested recursive", in: map[string]any{"a": map[string]any{"b": []any{"junk", float64(want.Unix())}}}, want: want, ok: true},
		{name: "priority key with junk falls through", in: map[string]any{"start": "TBD", "z": "2025-08-14T20:30:00Z"}, want: want, ok: true},
		{name: "nil", in: nil},
		{name: "empty", in: ""},
		{name: "garbage", in: "not a date"},
		{name: "bool", in: true},
		{name: "nan", in: math.NaN()},
		{name: "out of range", in: 1e20},
		{name: "empty mapping", in: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Instant(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestInstant_SecondsAndMillisAgree(t *testing.T) {
	sec, ok := Instant(float64(1734200000))
	require.True(t, ok)
	ms, ok := Instant(float64(1734200000000))
	require.True(t, ok)
	assert.True(t, sec.Equal(ms))
	assert.True(t, sec.Equal(time.Unix(1734200000, 0)))
}

func TestISO(t *testing.T) {
	assert.Equal(t, "2025-08-14T20:30:00Z", ISO("2025-08-14T16:30:00-04:00"))
	assert.Equal(t, "2024-12-14T18:13:20Z", ISO(float64(1734200000)))
	assert.Equal(t, "", ISO(map[string]any{"foo": "bar"}))
	assert.Equal(t, "2025-08-14T20:30:00Z", ISO("2025-08-14T20:30:00.750Z"), "fixed width")
}

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "seconds", in: float64(7200), want: 7200},
		{name: "millis by magnitude", in: float64(10_800_000), want: 10800},
		{name: "just below threshold", in: float64(9_999_999), want: 9999999},
		{name: "string seconds", in: " 5400 ", want: 5400},
		{name: "string millis", in: "12000000", want: 12000},
		{name: "fractional truncates", in: 59.9, want: 59},
		{name: "ms key classified by magnitude", in: map[string]any{"durationMs": float64(5_400_000)}, want: 5400000},
		{name: "ms key large value", in: map[string]any{"durationMs": float64(10_800_000)}, want: 10800},
		{name: "seconds key", in: map[string]any{"seconds": "3600"}, want: 3600},
		{name: "seconds key large value", in: map[string]any{"seconds": float64(12_000_000)}, want: 12000},
		{name: "ms key small value", in: map[string]any{"ms": 20000.0}, want: 20000},
		{name: "ms key preferred", in: map[string]any{"seconds": 10.0, "ms": 20000.0}, want: 20000},
		{name: "present key wins even when zero", in: map[string]any{"ms": "x", "other": 60.0}, want: 0},
		{name: "recursive", in: map[string]any{"outer": map[string]any{"value": float64(90)}}, want: 90},
		{name: "sequence", in: []any{"x", float64(60)}, want: 60},
		{name: "negative", in: float64(-30), want: 0},
		{name: "garbage string", in: "soon", want: 0},
		{name: "nil", in: nil, want: 0},
		{name: "bool", in: true, want: 0},
		{name: "inf string", in: "inf", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationSeconds(tt.in))
		})
	}
}

func TestGrid(t *testing.T) {
	tests := []struct {
		in, floor, ceil string
	}{
		{"2025-08-14T20:05:13Z", "2025-08-14T20:00:00Z", "2025-08-14T20:30:00Z"},
		{"2025-08-14T20:30:00Z", "2025-08-14T20:30:00Z", "2025-08-14T20:30:00Z"},
		{"2025-08-14T20:59:59Z", "2025-08-14T20:30:00Z", "2025-08-14T21:00:00Z"},
		{"2025-08-14T23:45:00Z", "2025-08-14T23:30:00Z", "2025-08-15T00:00:00Z"},
		{"2025-08-14T22:05:00Z", "2025-08-14T22:00:00Z", "2025-08-14T22:30:00Z"},
	}
	for _, tt := range tests {
		in := mustTime(t, tt.in)
		assert.True(t, mustTime(t, tt.floor).Equal(Floor30(in)), "floor %s", tt.in)
		assert.True(t, mustTime(t, tt.ceil).Equal(Ceil30(in)), "ceil %s", tt.in)
	}

	sub := mustTime(t, "2025-08-14T20:30:00Z").Add(time.Nanosecond)
	assert.True(t, mustTime(t, "2025-08-14T21:00:00Z").Equal(Ceil30(sub)))
	assert.False(t, OnGrid(sub))
}

func TestGridProperties(t *testing.T) {
	base := mustTime(t, "2025-01-01T00:00:00Z")
	for i := 0; i < 5000; i++ {
		ts := base.Add(time.Duration(i)*7*time.Minute + time.Duration(i%61)*time.Second)
		f := Floor30(ts)
		c := Ceil30(ts)
		assert.False(t, f.After(ts))
		assert.True(t, ts.Before(f.Add(GridStep)))
		assert.False(t, c.Before(ts))
		assert.Equal(t, OnGrid(ts), c.Equal(ts))
	}
}

func TestWalk_DeterministicOrder(t *testing.T) {
	tree := map[string]any{
		"b": []any{map[string]any{"id": "2"}},
		"a": map[string]any{"id": "1"},
	}
	var ids []string
	Mappings(tree, func(m map[string]any) {
		if id, ok := m["id"].(string); ok {
			ids = append(ids, id)
		}
	})
	assert.Equal(t, []string{"1", "2"}, ids)

	visited := 0
	completed := Walk(tree, func(any) bool {
		visited++
		return visited < 2
	})
	assert.False(t, completed)
	assert.Equal(t, 2, visited)
}
