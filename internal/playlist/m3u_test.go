// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteM3U(t *testing.T) {
	items := []Item{
		{Name: "Inter Miami CF vs. LA Galaxy", TvgID: "mls.apple.9910", TvgChNo: 9910, Group: "MLS - AppleTV", URL: "https://tv.apple.com/us/sporting-event/x/umc.cse.1"},
		{Name: "No URL", TvgID: "mls.apple.9911", TvgChNo: 9911, Group: "MLS - AppleTV"},
		{TvgID: "mls.apple.9912", TvgChNo: 9912, Group: "MLS - AppleTV", URL: "https://tv.apple.com/y"},
	}

	var b strings.Builder
	require.NoError(t, WriteM3U(&b, items, ""))

	want := "#EXTM3U\n" +
		`#EXTINF:-1 tvg-id="mls.apple.9910" tvg-name="Inter Miami CF vs. LA Galaxy" tvg-chno="9910" group-title="MLS - AppleTV",Inter Miami CF vs. LA Galaxy` + "\n" +
		"https://tv.apple.com/us/sporting-event/x/umc.cse.1\n" +
		`#EXTINF:-1 tvg-id="mls.apple.9912" tvg-name="MLS Match" tvg-chno="9912" group-title="MLS - AppleTV",MLS Match` + "\n" +
		"https://tv.apple.com/y\n"
	assert.Equal(t, want, b.String())
	assert.Equal(t, 2, Count(items))
}

func TestWriteM3U_Header(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteM3U(&b, nil, "http://host:8080/xmltv.xml"))
	assert.Equal(t, "#EXTM3U x-tvg-url=\"http://host:8080/xmltv.xml\"\n", b.String())
}

func TestWriteM3U_SanitizesAttributes(t *testing.T) {
	items := []Item{{Name: "A \"B\"\nC", TvgID: "id", TvgChNo: 1, Group: "g", URL: "http://x\n#EXTINF"}}

	var b strings.Builder
	require.NoError(t, WriteM3U(&b, items, ""))
	out := b.String()

	assert.Contains(t, out, `tvg-name="A 'B' C"`)
	assert.Contains(t, out, `,A "B" C`)
	assert.Equal(t, 1, strings.Count(out, "#EXTINF:"))
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
