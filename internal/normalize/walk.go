// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import "sort"

// Kind classifies a decoded JSON value.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

// KindOf reports whether v is a mapping, a sequence or a scalar.
// nil and unsupported types count as scalars.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case []any, []map[string]any:
		return KindSequence
	default:
		return KindScalar
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Children returns the direct child values of a mapping (sorted by key) or a
// sequence (in order). Scalars have no children.
func Children(v any) []any {
	switch t := v.(type) {
	case map[string]any:
		out := make([]any, 0, len(t))
		for _, k := range SortedKeys(t) {
			out = append(out, t[k])
		}
		return out
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	}
	return nil
}

// Walk visits v depth-first in pre-order. Mapping children are visited in
// sorted key order so traversal is deterministic. Returning false from fn
// stops the walk; Walk reports whether it ran to completion.
func Walk(v any, fn func(v any) bool) bool {
	if !fn(v) {
		return false
	}
	for _, child := range Children(v) {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// Mappings calls fn for every mapping reachable from v, parents before children.
func Mappings(v any, fn func(m map[string]any)) {
	Walk(v, func(node any) bool {
		if m, ok := node.(map[string]any); ok {
			fn(m)
		}
		return true
	})
}

// probe resolves v with scalar, falling back to a depth-first search where
// the first child yielding ok wins. priority keys are tried first on mappings.
func probe[T any](v any, priority []string, scalar func(any) (T, bool)) (T, bool) {
	switch KindOf(v) {
	case KindMapping:
		m := v.(map[string]any)
		for _, k := range priority {
			if child, ok := m[k]; ok {
				if out, ok := probe(child, priority, scalar); ok {
					return out, true
				}
			}
		}
		for _, child := range Children(m) {
			if out, ok := probe(child, priority, scalar); ok {
				return out, true
			}
		}
	case KindSequence:
		for _, child := range Children(v) {
			if out, ok := probe(child, priority, scalar); ok {
				return out, true
			}
		}
	default:
		return scalar(v)
	}
	var zero T
	return zero, false
}
