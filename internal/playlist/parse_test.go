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

func TestParse_RoundTrip(t *testing.T) {
	items := []Item{
		{Name: `Club "A", B & C`, TvgID: "mls.apple.9910", TvgChNo: 9910, Group: "MLS - AppleTV", URL: "https://tv.apple.com/a"},
		{Name: "Skipped", TvgID: "mls.apple.9911", TvgChNo: 9911, Group: "MLS - AppleTV"},
		{Name: "Seattle vs. Portland", TvgID: "mls.apple.9912", TvgChNo: 9912, Group: "MLS - AppleTV", URL: "https://tv.apple.com/b?playableId=x"},
	}
	var b strings.Builder
	require.NoError(t, WriteM3U(&b, items, "http://host/xmltv.xml"))

	p, err := Parse(b.String())
	require.NoError(t, err)
	assert.Equal(t, "http://host/xmltv.xml", p.XTvgURL)
	require.Len(t, p.Items, 2)
	assert.Equal(t, items[0], p.Items[0])
	assert.Equal(t, items[2], p.Items[1])
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Item
		wantErr error
	}{
		{name: "empty", content: "", wantErr: ErrMissingHeader},
		{name: "no header", content: "#EXTINF:-1,A\nhttp://a\n", wantErr: ErrMissingHeader},
		{name: "header only", content: "#EXTM3U\n"},
		{
			name:    "crlf and comments",
			content: "#EXTM3U\r\n#EXTINF:-1 tvg-id=\"x\" tvg-chno=\"7\",Seven\r\n#EXTVLCOPT:foo\r\nhttp://seven\r\n",
			want:    []Item{{Name: "Seven", TvgID: "x", TvgChNo: 7, URL: "http://seven"}},
		},
		{
			name:    "entry without url is dropped",
			content: "#EXTM3U\n#EXTINF:-1,Lost\n#EXTINF:-1,Found\nhttp://found\n",
			want:    []Item{{Name: "Found", URL: "http://found"}},
		},
		{
			name:    "url without extinf ignored",
			content: "#EXTM3U\nhttp://orphan\n",
		},
		{
			name:    "bad chno",
			content: "#EXTM3U\n#EXTINF:-1 tvg-chno=\"abc\",N\nhttp://n\n",
			want:    []Item{{Name: "N", URL: "http://n"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Items)
		})
	}
}
