// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package schedule turns loosely-typed match records into channel summaries.
package schedule

import (
	"strings"

	"github.com/ManuGH/sportsguide/internal/normalize"
)

// Record is one schema-free match record as decoded from JSON.
type Record map[string]any

// Str returns the first key whose value is a non-empty string.
func (r Record) Str(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// First returns the first key whose value is set: not nil, not an empty
// string, not a zero number, not false and not an empty collection.
func (r Record) First(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && set(v) {
			return v
		}
	}
	return nil
}

func set(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return true
}

// AiringType is the trimmed, lowercased airing_type.
func (r Record) AiringType() string {
	return normalize.Token(r.Str("airing_type"))
}

// ID returns event_id, or id for canvas items.
func (r Record) ID() string {
	return r.Str("event_id", "id")
}

// IsLiveWithTeams reports whether r is airing live with both teams named.
func IsLiveWithTeams(r Record) bool {
	if r.AiringType() != "live" {
		return false
	}
	return r.Str("team1_name") != "" && r.Str("team2_name") != ""
}

// Filter returns the records for which keep reports true.
func Filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func trimmed(s string) string { return strings.TrimSpace(s) }
