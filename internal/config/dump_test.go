// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump_YAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.DataDir = t.TempDir()
	cfg.UTSK = "super-secret"

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, cfg, "yaml"))
	out := buf.String()

	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, `utsk: '***'`)
	assert.Contains(t, out, "baseChannel: 9910")

	// the dump parses back under strict mode
	fc, err := ParseFile(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "***", fc.Source.UTSK)
	assert.Empty(t, fc.Source.UTSCF)

	back := Defaults()
	require.NoError(t, mergeFileConfig(&back, fc))
	assert.Equal(t, cfg.FillerBase, back.FillerBase)
	assert.Equal(t, cfg.RefreshInterval, back.RefreshInterval)
	assert.Equal(t, cfg.PreviewEnabled, back.PreviewEnabled)
}

func TestDump_JSON(t *testing.T) {
	cfg := Defaults()
	cfg.UTSCF = "token"

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, cfg, "json"))

	var tree map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &tree))
	source, ok := tree["source"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "***", source["utscf"])
	assert.Equal(t, "tvs.sbd.7000", source["channel"])
}

func TestDump_UnknownFormat(t *testing.T) {
	err := Dump(&bytes.Buffer{}, Defaults(), "toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestMaskSecrets(t *testing.T) {
	type inner struct {
		Token string
		Name  string
	}
	got := MaskSecrets(map[string]any{
		"password": "p",
		"nested":   map[string]any{"api_key": "k", "plain": 1},
		"list":     []any{map[string]any{"secret": "s"}},
		"struct":   &inner{Token: "t", Name: "n"},
		"utsk":     "",
	})
	want := map[string]any{
		"password": "***",
		"nested":   map[string]any{"api_key": "***", "plain": 1},
		"list":     []any{map[string]any{"secret": "***"}},
		"struct":   map[string]any{"Token": "***", "Name": "n"},
		"utsk":     "",
	}
	assert.Equal(t, want, got)
	assert.Nil(t, MaskSecrets(nil))
}

func TestParseServerConfigForApp(t *testing.T) {
	cfg := Defaults()
	cfg.ShutdownTimeout = 0
	t.Setenv("SPORTSGUIDE_SERVER_READ_TIMEOUT", "5s")

	sc := ParseServerConfigForApp(cfg)
	assert.Equal(t, ":8080", sc.ListenAddr)
	assert.Equal(t, minShutdownTimeout, sc.ShutdownTimeout)
	assert.Equal(t, "5s", sc.ReadTimeout.String())
	assert.Equal(t, defaultMaxHeaderBytes, sc.MaxHeaderBytes)
}
