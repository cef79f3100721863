// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import (
	"net/url"
	"strings"
)

// SiteOrigin prefixes relative page URLs.
const SiteOrigin = "https://tv.apple.com"

const umcPrefix = "umc.cse."

// NormalizePageURL trims u, collapses a doubled origin, makes relative paths
// absolute and drops the ctx_brand query parameter.
func NormalizePageURL(u string) string {
	u = trimmed(u)
	if u == "" {
		return ""
	}
	if dbl := SiteOrigin + SiteOrigin; strings.HasPrefix(u, dbl) {
		u = SiteOrigin + u[len(dbl):]
	}
	if strings.HasPrefix(u, "/") {
		u = SiteOrigin + u
	}
	return withoutQueryParam(u, "ctx_brand")
}

// ExtractUMCID returns the umc.cse.* content id from the targetId query
// parameter or, failing that, from the first matching path segment.
func ExtractUMCID(u string) string {
	if u == "" {
		return ""
	}
	p, err := url.Parse(u)
	if err != nil {
		return ""
	}
	if tid := p.Query().Get("targetId"); strings.HasPrefix(tid, umcPrefix) {
		return tid
	}
	for _, seg := range strings.Split(p.Path, "/") {
		if strings.HasPrefix(seg, umcPrefix) {
			return seg
		}
	}
	return ""
}

// BuildDeeplink returns the normalized page URL with playableId set.
func BuildDeeplink(pageURL, playableID string) string {
	page := NormalizePageURL(pageURL)
	if page == "" || playableID == "" {
		return page
	}
	return withQueryParam(page, "playableId", playableID)
}

// withoutQueryParam removes key from the query, leaving the rest untouched.
func withoutQueryParam(u, key string) string {
	p, err := url.Parse(u)
	if err != nil || p.RawQuery == "" {
		return u
	}
	pairs := strings.Split(p.RawQuery, "&")
	kept := pairs[:0]
	for _, pair := range pairs {
		if queryKey(pair) != key {
			kept = append(kept, pair)
		}
	}
	p.RawQuery = strings.Join(kept, "&")
	return p.String()
}

// withQueryParam sets key=value in place, or appends it.
func withQueryParam(u, key, value string) string {
	p, err := url.Parse(u)
	if err != nil {
		return u
	}
	entry := url.QueryEscape(key) + "=" + url.QueryEscape(value)

	var pairs []string
	if p.RawQuery != "" {
		pairs = strings.Split(p.RawQuery, "&")
	}
	out := make([]string, 0, len(pairs)+1)
	replaced := false
	for _, pair := range pairs {
		if queryKey(pair) != key {
			out = append(out, pair)
			continue
		}
		if !replaced {
			out = append(out, entry)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, entry)
	}
	p.RawQuery = strings.Join(out, "&")
	return p.String()
}

func queryKey(pair string) string {
	k, _, _ := strings.Cut(pair, "=")
	if unescaped, err := url.QueryUnescape(k); err == nil {
		return unescaped
	}
	return k
}
