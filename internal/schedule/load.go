// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadMatches reads a schedule file. See DecodeMatches for accepted shapes.
func LoadMatches(path string) ([]Record, error) {
	// path comes from validated configuration
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	return DecodeMatches(data)
}

// DecodeMatches accepts a JSON array of records, an object with a "matches"
// array, or an object holding some other list of objects (first in
// document order). Any other shape yields no records. Non-object array entries are
// dropped.
func DecodeMatches(data []byte) ([]Record, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}

	switch t := doc.(type) {
	case []any:
		return records(t), nil
	case map[string]any:
		if list, ok := t["matches"].([]any); ok {
			return records(list), nil
		}
		for _, k := range objectKeys(data) {
			list, ok := t[k].([]any)
			if !ok || len(list) == 0 {
				continue
			}
			if _, ok := list[0].(map[string]any); ok {
				return records(list), nil
			}
		}
	}
	return []Record{}, nil
}

// objectKeys returns the top-level keys of a JSON object in document order.
// data must already have decoded as an object.
func objectKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
		keys = append(keys, key)
	}
	return keys
}

func records(list []any) []Record {
	out := make([]Record, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}
