// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/normalize"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
	spaces   = regexp.MustCompile(`\s+`)
)

// HeroIndex maps content ids and title keys to hero descriptions found
// anywhere in a raw canvas document. The first description seen wins.
type HeroIndex struct {
	byUMC   map[string]string
	byTitle map[string]string
}

// NewHeroIndex indexes every mapping in tree that carries a heroDescription.
func NewHeroIndex(tree any) *HeroIndex {
	idx := &HeroIndex{byUMC: map[string]string{}, byTitle: map[string]string{}}
	normalize.Mappings(tree, func(m map[string]any) {
		hero, _ := m["heroDescription"].(string)
		if hero == "" {
			return
		}
		u, _ := m["url"].(string)
		if umc := ExtractUMCID(u); umc != "" {
			if _, ok := idx.byUMC[umc]; !ok {
				idx.byUMC[umc] = hero
			}
		}
		title, _ := m["title"].(string)
		for _, key := range TitleKeys(title) {
			if _, ok := idx.byTitle[key]; !ok {
				idx.byTitle[key] = hero
			}
		}
	})
	return idx
}

// LoadHeroIndex indexes the raw canvas file at path. A missing or
// unreadable file yields an empty index.
func LoadHeroIndex(path string) *HeroIndex {
	logger := xglog.WithComponent("schedule")
	empty := NewHeroIndex(nil)
	if path == "" {
		return empty
	}
	// path comes from validated configuration
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304
	if err != nil {
		logger.Debug().Err(err).Str(xglog.FieldEvent, "hero.skip").Str(xglog.FieldPath, path).Msg("no raw canvas for hero descriptions")
		return empty
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		logger.Warn().Err(err).Str(xglog.FieldEvent, "hero.invalid").Str(xglog.FieldPath, path).Msg("raw canvas is not valid JSON")
		return empty
	}
	idx := NewHeroIndex(tree)
	logger.Debug().
		Str(xglog.FieldEvent, "hero.indexed").
		Int("by_umc", len(idx.byUMC)).
		Int("by_title", len(idx.byTitle)).
		Msg("hero descriptions indexed")
	return idx
}

// Len returns the number of indexed keys.
func (h *HeroIndex) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byUMC) + len(h.byTitle)
}

// ByUMC looks up a hero description by content id.
func (h *HeroIndex) ByUMC(umc string) (string, bool) {
	if h == nil || umc == "" {
		return "", false
	}
	s, ok := h.byUMC[umc]
	return s, ok
}

// ByTitle looks up a hero description by either orientation of title.
func (h *HeroIndex) ByTitle(title string) (string, bool) {
	if h == nil {
		return "", false
	}
	for _, key := range TitleKeys(title) {
		if s, ok := h.byTitle[key]; ok {
			return s, true
		}
	}
	return "", false
}

// Resolve picks the hero text for a match: its own text, then the content
// id of the page URL or deeplink, then the title keys.
func (h *HeroIndex) Resolve(own, pageURL, deeplink, title string) string {
	if own = strings.TrimSpace(own); own != "" {
		return own
	}
	umc := ExtractUMCID(pageURL)
	if umc == "" {
		umc = ExtractUMCID(deeplink)
	}
	if s, ok := h.ByUMC(umc); ok {
		return s
	}
	if s, ok := h.ByTitle(title); ok {
		return s
	}
	return ""
}

// TitleKeys returns the lookup keys for a "{a} vs {b}" or "{a} at {b}" title
// in both team orders. Titles without any team tokens have no keys.
func TitleKeys(title string) []string {
	t := strings.ReplaceAll(strings.ToLower(title), " vs. ", " vs ")
	var a, b string
	switch {
	case strings.Contains(t, " vs "):
		a, b, _ = strings.Cut(t, " vs ")
	case strings.Contains(t, " at "):
		a, b, _ = strings.Cut(t, " at ")
	default:
		a = t
	}
	first, second := teamKey(a), teamKey(b)
	if first == "" && second == "" {
		return nil
	}
	return []string{first + "|" + second, second + "|" + first}
}

// teamKey canonicalizes a team name: accents folded, "football club" and
// "club de foot" abbreviated, punctuation dropped, whitespace collapsed.
func teamKey(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "football club", "fc")
	s = strings.ReplaceAll(s, "club de foot", "cf")
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
