// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package canvas

import (
	"sort"

	"github.com/ManuGH/sportsguide/internal/schedule"
)

// Stats summarizes a scrape.
type Stats struct {
	Total              int      `json:"total"`
	Live               int      `json:"live"`
	Upcoming           int      `json:"upcoming"`
	Teams              int      `json:"teams"`
	Leagues            []string `json:"leagues"`
	WithImages         int      `json:"with_images"`
	WithTeamImages     int      `json:"with_team_images"`
	WithPlayableImages int      `json:"with_playable_images"`
}

// Summarize counts live and upcoming records, distinct teams and leagues,
// and records carrying artwork.
func Summarize(records []schedule.Record) Stats {
	st := Stats{Total: len(records), Leagues: []string{}}
	teams := map[string]struct{}{}
	leagues := map[string]struct{}{}

	for _, r := range records {
		if r.AiringType() == "live" {
			st.Live++
		}
		if at := r.Str("airing_type"); at == "Upcoming" || at == "Future" {
			st.Upcoming++
		}
		for _, k := range []string{"team1_name", "team2_name"} {
			if name := r.Str(k); name != "" {
				teams[name] = struct{}{}
			}
		}
		if league := r.Str("league"); league != "" {
			leagues[league] = struct{}{}
		}
		if r.First("images") != nil {
			st.WithImages++
		}
		if r.First("team1_images", "team2_images") != nil {
			st.WithTeamImages++
		}
		if r.First("playable_images") != nil {
			st.WithPlayableImages++
		}
	}

	st.Teams = len(teams)
	for l := range leagues {
		st.Leagues = append(st.Leagues, l)
	}
	sort.Strings(st.Leagues)
	return st
}
