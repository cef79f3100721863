// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ManuGH/sportsguide/internal/normalize"
)

const (
	DefaultSportName = "Soccer"
	DefaultType      = "SportingEvent"
)

// MatchSummary is the canonical view of one qualifying match.
type MatchSummary struct {
	Title             string     `json:"title"`
	ShortTitle        string     `json:"short_title"`
	SportName         string     `json:"sport_name"`
	Type              string     `json:"type"`
	HeroDescription   string     `json:"hero_description"`
	HomeTeam          string     `json:"home_team"`
	AwayTeam          string     `json:"away_team"`
	StartTime         *time.Time `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	DurationS         int        `json:"duration_s"`
	Venue             string     `json:"venue"`
	PrimaryPlayableID string     `json:"primary_playable_id"`
	PrimaryURL        string     `json:"primary_url"`
	DeeplinkURL       string     `json:"deeplink_url"`
}

// URL is the address a playlist entry points at.
func (s MatchSummary) URL() string {
	if s.PrimaryURL != "" {
		return s.PrimaryURL
	}
	return s.DeeplinkURL
}

// Playable is a deeplink entry in the preview document.
type Playable struct {
	Title       string `json:"title"`
	PlayableID  string `json:"playable_id"`
	DeeplinkURL string `json:"deeplink_url"`
	PageURL     string `json:"page_url"`
}

// Summarize builds the summary for one record. It does not apply the
// qualification filter.
func Summarize(r Record, hero *HeroIndex) MatchSummary {
	home := r.Str("team1_name")
	away := r.Str("team2_name")
	title := r.Str("title")
	if title == "" {
		title = home + " vs. " + away
	}

	page := NormalizePageURL(r.Str("deep_link", "url"))
	playableID := r.Str("playable_id")
	deeplink := BuildDeeplink(page, playableID)

	s := MatchSummary{
		Title:             title,
		ShortTitle:        r.Str("shortTitle", "short_title"),
		SportName:         r.Str("sportName", "sport"),
		Type:              r.Str("type"),
		HomeTeam:          home,
		AwayTeam:          away,
		StartTime:         instant(r["event_time"]),
		EndTime:           instant(r["end_time"]),
		DurationS:         normalize.DurationSeconds(r.First("duration", "duration_s")),
		Venue:             r.Str("venue"),
		PrimaryPlayableID: playableID,
		PrimaryURL:        page,
		DeeplinkURL:       deeplink,
	}
	if s.SportName == "" {
		s.SportName = DefaultSportName
	}
	if s.Type == "" {
		s.Type = DefaultType
	}
	s.HeroDescription = hero.Resolve(r.Str("heroDescription", "hero_description"), page, deeplink, title)
	return s
}

func instant(v any) *time.Time {
	t, ok := normalize.Instant(v)
	if !ok {
		return nil
	}
	return &t
}

// BuildSummaries keeps the live records with both teams and summarizes them
// in input order. A playable is emitted for every summary that has a
// playable id or a deeplink.
func BuildSummaries(records []Record, hero *HeroIndex) ([]MatchSummary, []Playable) {
	live := Filter(records, IsLiveWithTeams)
	summaries := make([]MatchSummary, 0, len(live))
	playables := make([]Playable, 0, len(live))
	for _, r := range live {
		s := Summarize(r, hero)
		summaries = append(summaries, s)
		if s.PrimaryPlayableID != "" || s.DeeplinkURL != "" {
			playables = append(playables, Playable{
				Title:       s.Title,
				PlayableID:  s.PrimaryPlayableID,
				DeeplinkURL: s.DeeplinkURL,
				PageURL:     s.PrimaryURL,
			})
		}
	}
	return summaries, playables
}

// Preview is the deeplink preview document.
type Preview struct {
	Summary   []MatchSummary `json:"summary"`
	Playables []Playable     `json:"playables"`
}

// WritePreview writes p as two-space indented UTF-8 JSON without HTML escaping.
func WritePreview(w io.Writer, p Preview) error {
	if p.Summary == nil {
		p.Summary = []MatchSummary{}
	}
	if p.Playables == nil {
		p.Playables = []Playable{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(p)
}
