// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package canvas

import (
	"net/url"
	"slices"
	"strings"

	"github.com/ManuGH/sportsguide/internal/normalize"
	"github.com/ManuGH/sportsguide/internal/schedule"
)

// ItemTypeSportingEvent is the only canvas item type that becomes a match.
const ItemTypeSportingEvent = "SportingEvent"

// unknownEventTime sorts records without a usable event time last.
const unknownEventTime = "9999-12-31T23:59:59Z"

// ParseCanvas extracts match records from data.canvas.shelves[].items[],
// keeping SportingEvent items and dropping repeated ids.
func ParseCanvas(tree any) []schedule.Record {
	root, _ := tree.(map[string]any)
	data, _ := root["data"].(map[string]any)
	cv, _ := data["canvas"].(map[string]any)
	shelves, _ := cv["shelves"].([]any)

	var out []schedule.Record
	seen := map[any]bool{}
	for _, s := range shelves {
		shelf, _ := s.(map[string]any)
		items, _ := shelf["items"].([]any)
		for _, it := range items {
			item, ok := it.(map[string]any)
			if !ok || item["type"] != ItemTypeSportingEvent {
				continue
			}
			id := item["id"]
			if !hashable(id) || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, parseItem(schedule.Record(item)))
		}
	}
	if out == nil {
		out = []schedule.Record{}
	}
	return out
}

func hashable(v any) bool {
	switch v.(type) {
	case nil, string, float64, bool:
		return true
	}
	return false
}

func parseItem(item schedule.Record) schedule.Record {
	m := schedule.Record{
		"event_id":    item["id"],
		"title":       item["title"],
		"short_title": item["shortTitle"],
		"league":      item["leagueName"],
		"league_abbr": item["leagueAbbreviation"],
		"sport":       item["sportName"],
		"venue":       item["venueName"],
		"url":         item["url"],
		"airing_type": item["airingType"],
		"badge":       item["badge"],
		"event_time":  item["eventTime"],
		"end_time":    item["endAirTime"],
	}

	if images := pick(item, map[string]string{
		"main":         "images",
		"artwork":      "artwork",
		"thumbnails":   "thumbnails",
		"coverArt":     "coverArt",
		"previewFrame": "previewFrame",
	}); images != nil {
		m["images"] = images
	}

	if competitors, _ := item["competitors"].([]any); len(competitors) >= 2 {
		for i, prefix := range []string{"team1", "team2"} {
			team, _ := competitors[i].(map[string]any)
			tr := schedule.Record(team)
			m[prefix+"_name"] = tr["name"]
			m[prefix+"_abbr"] = tr["abbreviation"]
			m[prefix+"_id"] = tr["id"]
			if images := pick(tr, map[string]string{"images": "images", "artwork": "artwork", "logo": "logo"}); images != nil {
				m[prefix+"_images"] = images
			}
		}
	}

	if playables, _ := item["playables"].([]any); len(playables) > 0 {
		p, _ := playables[0].(map[string]any)
		pr := schedule.Record(p)
		m["playable_id"] = pr["id"]
		m["playable_type"] = pr["type"]

		images := pick(pr, map[string]string{"images": "images", "artwork": "artwork"})
		if content := contentImage(pr); content != "" {
			if images == nil {
				images = map[string]any{}
			}
			images["contentImage"] = content
		}
		if images != nil {
			m["playable_images"] = images
		}
	}

	if page := item.Str("url"); page != "" {
		deepLink := schedule.SiteOrigin + page
		m["deep_link"] = deepLink
		if pid := m.Str("playable_id"); pid != "" {
			m["deep_link_full"] = deepLink + "?playableId=" + strings.ReplaceAll(url.QueryEscape(pid), "+", "%20")
		}
	}
	return m
}

// pick copies the set values of src (by source key) under their target keys.
func pick(src schedule.Record, keys map[string]string) map[string]any {
	var out map[string]any
	for target, key := range keys {
		if v := src.First(key); v != nil {
			if out == nil {
				out = map[string]any{}
			}
			out[target] = v
		}
	}
	return out
}

// contentImage reads canonicalMetadata.images.contentImage.url, the
// composite artwork with both team logos.
func contentImage(p schedule.Record) string {
	canonical, _ := p["canonicalMetadata"].(map[string]any)
	images, _ := canonical["images"].(map[string]any)
	content, _ := images["contentImage"].(map[string]any)
	s, _ := content["url"].(string)
	return s
}

// SortByEventTime orders records by normalized event time, stable, with
// unknown times last.
func SortByEventTime(records []schedule.Record) {
	slices.SortStableFunc(records, func(a, b schedule.Record) int {
		return strings.Compare(eventTime(a), eventTime(b))
	})
}

// eventTime is the fixed-width UTC key, so string order is time order.
func eventTime(r schedule.Record) string {
	if iso := normalize.ISO(r["event_time"]); iso != "" {
		return iso
	}
	return unknownEventTime
}
