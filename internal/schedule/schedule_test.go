// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveRecord() Record {
	return Record{
		"airing_type": " LIVE ",
		"team1_name":  "Inter Miami CF",
		"team2_name":  "LA Galaxy",
		"event_time":  "2025-08-14T20:30:00Z",
		"duration":    float64(7200),
		"venue":       "Chase Stadium",
		"playable_id": "tvs.sbd.7000:umc.cse.aaa",
		"deep_link":   "https://tv.apple.com/us/sporting-event/x/umc.cse.aaa?ctx_brand=tvs.sbd.7000",
	}
}

func TestIsLiveWithTeams(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{name: "live with teams", rec: liveRecord(), want: true},
		{name: "upcoming", rec: Record{"airing_type": "Upcoming", "team1_name": "A", "team2_name": "B"}},
		{name: "missing team1", rec: Record{"airing_type": "Live", "team2_name": "B"}},
		{name: "empty team2", rec: Record{"airing_type": "Live", "team1_name": "A", "team2_name": ""}},
		{name: "non-string team", rec: Record{"airing_type": "Live", "team1_name": 7.0, "team2_name": "B"}},
		{name: "no airing type", rec: Record{"team1_name": "A", "team2_name": "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLiveWithTeams(tt.rec))
		})
	}
}

func TestFilter(t *testing.T) {
	records := []Record{liveRecord(), {"airing_type": "Upcoming"}, liveRecord()}
	assert.Len(t, Filter(records, IsLiveWithTeams), 2)
	assert.Empty(t, Filter(records, func(Record) bool { return false }))
	assert.NotNil(t, Filter(nil, IsLiveWithTeams))
}

func TestDecodeMatches(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "array", in: `[{"a":1},{"b":2}]`, want: 2},
		{name: "matches key", in: `{"matches":[{"a":1}],"other":[{"x":1},{"y":2}]}`, want: 1},
		{name: "first list of objects", in: `{"b":[{"x":1},{"y":2}],"a":[1,2],"c":[{"z":1}]}`, want: 2},
		{name: "document order not key order", in: `{"z":[{"x":1}],"a":[{"y":1},{"y":2}]}`, want: 1},
		{name: "empty list skipped", in: `{"z":[],"a":[{"y":1}]}`, want: 1},
		{name: "no lists", in: `{"a":1}`, want: 0},
		{name: "scalar", in: `42`, want: 0},
		{name: "non-object entries dropped", in: `[{"a":1},3,"x"]`, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMatches([]byte(tt.in))
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	_, err := DecodeMatches([]byte(`{`))
	require.Error(t, err)
}

func TestLoadMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"x"}]`), 0o600))

	got, err := LoadMatches(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Str("title"))

	_, err = LoadMatches(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestURLHelpers(t *testing.T) {
	assert.Equal(t, "", NormalizePageURL("  "))
	assert.Equal(t, "https://tv.apple.com/us/x", NormalizePageURL(" /us/x "))
	assert.Equal(t, "https://tv.apple.com/us/x", NormalizePageURL("https://tv.apple.comhttps://tv.apple.com/us/x"))
	assert.Equal(t, "https://tv.apple.com/us/x?a=1&b=2", NormalizePageURL("https://tv.apple.com/us/x?a=1&ctx_brand=tvs.sbd.7000&b=2"))
	assert.Equal(t, "https://tv.apple.com/us/x", NormalizePageURL("https://tv.apple.com/us/x?ctx_brand=z"))

	assert.Equal(t, "umc.cse.123", ExtractUMCID("https://tv.apple.com/us/sporting-event/x/umc.cse.123"))
	assert.Equal(t, "umc.cse.999", ExtractUMCID("https://tv.apple.com/us/x/umc.cse.123?targetId=umc.cse.999"))
	assert.Equal(t, "umc.cse.123", ExtractUMCID("https://tv.apple.com/us/x/umc.cse.123?targetId=other"))
	assert.Equal(t, "", ExtractUMCID("https://tv.apple.com/us/x"))
	assert.Equal(t, "", ExtractUMCID(""))

	assert.Equal(t, "", BuildDeeplink("", "p"))
	assert.Equal(t, "https://tv.apple.com/us/x", BuildDeeplink("/us/x", ""))
	assert.Equal(t, "https://tv.apple.com/us/x?playableId=tvs.sbd.7000%3Aumc.cse.1", BuildDeeplink("/us/x", "tvs.sbd.7000:umc.cse.1"))
	assert.Equal(t, "https://tv.apple.com/us/x?a=1&playableId=new&b=2", BuildDeeplink("/us/x?a=1&playableId=old&b=2&playableId=dup", "new"))
}

func TestTitleKeys(t *testing.T) {
	keys := TitleKeys("Inter Miami CF vs. LA Galaxy")
	assert.Equal(t, []string{"inter miami cf|la galaxy", "la galaxy|inter miami cf"}, keys)

	assert.Equal(t, TitleKeys("LA Galaxy at Inter Miami Football Club"), TitleKeys("la galaxy vs inter miami fc"))
	assert.Equal(t, TitleKeys("CF Montréal at Toronto FC"), TitleKeys("CF Montreal vs Toronto FC"))
	assert.Nil(t, TitleKeys(""))
	assert.Nil(t, TitleKeys(" -- "))
}

func TestHeroIndex(t *testing.T) {
	idx := LoadHeroIndex(filepath.Join("testdata", "raw_canvas.json"))
	require.NotZero(t, idx.Len())

	s, ok := idx.ByUMC("umc.cse.aaa")
	require.True(t, ok)
	assert.Equal(t, "Messi returns to Chase Stadium.", s)

	s, ok = idx.ByTitle("Toronto FC vs. CF Montreal")
	require.True(t, ok)
	assert.Equal(t, "Canadian Classique.", s)

	assert.Equal(t, "own", idx.Resolve(" own ", "", "", ""))
	assert.Equal(t, "Messi returns to Chase Stadium.", idx.Resolve("", "", "https://tv.apple.com/us/x/umc.cse.aaa?playableId=1", ""))
	assert.Equal(t, "", idx.Resolve("", "", "", "Nobody vs. Noone"))

	missing := LoadHeroIndex(filepath.Join(t.TempDir(), "none.json"))
	assert.Zero(t, missing.Len())

	var nilIdx *HeroIndex
	assert.Equal(t, "", nilIdx.Resolve("", "u", "d", "A vs B"))
}

func TestLoadHeroIndex_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	assert.Zero(t, LoadHeroIndex(path).Len())
}

func TestBuildSummaries(t *testing.T) {
	noTeam := liveRecord()
	delete(noTeam, "team1_name")

	bare := Record{"airing_type": "live", "team1_name": "Home", "team2_name": "Away", "event_time": map[string]any{"kickoff": 1755203400.0}}

	records := []Record{liveRecord(), noTeam, bare}
	idx := LoadHeroIndex(filepath.Join("testdata", "raw_canvas.json"))

	summaries, playables := BuildSummaries(records, idx)
	require.Len(t, summaries, 2)
	require.Len(t, playables, 1)

	first := summaries[0]
	assert.Equal(t, "Inter Miami CF vs. LA Galaxy", first.Title)
	assert.Equal(t, "Soccer", first.SportName)
	assert.Equal(t, "SportingEvent", first.Type)
	assert.Equal(t, 7200, first.DurationS)
	require.NotNil(t, first.StartTime)
	assert.True(t, time.Date(2025, 8, 14, 20, 30, 0, 0, time.UTC).Equal(*first.StartTime))
	assert.Nil(t, first.EndTime)
	assert.Equal(t, "https://tv.apple.com/us/sporting-event/x/umc.cse.aaa", first.PrimaryURL)
	assert.Equal(t, "https://tv.apple.com/us/sporting-event/x/umc.cse.aaa?playableId=tvs.sbd.7000%3Aumc.cse.aaa", first.DeeplinkURL)
	assert.Equal(t, "Messi returns to Chase Stadium.", first.HeroDescription)
	assert.Equal(t, first.PrimaryURL, first.URL())

	second := summaries[1]
	assert.Equal(t, "Home vs. Away", second.Title)
	assert.Equal(t, "", second.URL())
	require.NotNil(t, second.StartTime)
	assert.Equal(t, int64(1755203400), second.StartTime.Unix())

	assert.Equal(t, first.Title, playables[0].Title)
	assert.Equal(t, first.DeeplinkURL, playables[0].DeeplinkURL)
}

func TestSummarize_DurationFallback(t *testing.T) {
	r := liveRecord()
	r["duration"] = 0.0
	r["duration_s"] = "5400"
	assert.Equal(t, 5400, Summarize(r, nil).DurationS)
}

func TestWritePreview(t *testing.T) {
	start := time.Date(2025, 8, 14, 20, 30, 0, 0, time.UTC)
	p := Preview{Summary: []MatchSummary{{Title: "A & B — <live>", StartTime: &start}}}

	var buf bytes.Buffer
	require.NoError(t, WritePreview(&buf, p))
	out := buf.String()

	assert.Contains(t, out, `"title": "A & B — <live>"`)
	assert.Contains(t, out, `"start_time": "2025-08-14T20:30:00Z"`)
	assert.Contains(t, out, `"end_time": null`)
	assert.Contains(t, out, `"playables": []`)

	var back map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Contains(t, back, "summary")
}

func TestAssignChannels(t *testing.T) {
	chans := AssignChannels([]MatchSummary{{Title: "A vs. B"}, {}}, Numbering{Base: 9910, Group: "G"})
	require.Len(t, chans, 2)
	assert.Equal(t, "mls.apple.9910", chans[0].ID)
	assert.Equal(t, []string{"A vs. B", "9910", "G"}, chans[0].DisplayNames())
	assert.Equal(t, 9911, chans[1].Number)
	assert.Equal(t, "MLS Match", chans[1].Name)

	custom := AssignChannels([]MatchSummary{{Title: "x"}}, Numbering{Base: 1, IDPrefix: "league"})
	assert.Equal(t, "league.1", custom[0].ID)
}
