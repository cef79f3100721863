// SPDX-License-Identifier: MIT

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		out[string(a.Key)] = a.Value
	}
	return out
}

func TestHTTPAttributes(t *testing.T) {
	got := attrMap(HTTPAttributes("GET", "/xmltv.xml", "/xmltv.xml?x=1", 200))
	assert.Len(t, got, 4)
	assert.Equal(t, "GET", got[HTTPMethodKey].AsString())
	assert.Equal(t, "/xmltv.xml", got[HTTPRouteKey].AsString())
	assert.Equal(t, "/xmltv.xml?x=1", got[HTTPURLKey].AsString())
	assert.Equal(t, int64(200), got[HTTPStatusCodeKey].AsInt64())
}

func TestPipelineAttributes(t *testing.T) {
	r := attrMap(RefreshAttributes("api", true))
	assert.Equal(t, "api", r[RefreshTriggerKey].AsString())
	assert.True(t, r[RefreshFetchKey].AsBool())

	s := attrMap(ScrapeAttributes(12, false))
	assert.Equal(t, int64(12), s[ScrapeEventsKey].AsInt64())
	assert.False(t, s[ScrapeWrittenKey].AsBool())

	e := attrMap(ExportAttributes(3, 2, 14))
	assert.Equal(t, int64(3), e[ExportMatchesKey].AsInt64())
	assert.Equal(t, int64(2), e[ExportChannelsKey].AsInt64())
	assert.Equal(t, int64(14), e[ExportProgrammesKey].AsInt64())

	x := attrMap(ErrorAttributes("fetch"))
	assert.True(t, x[ErrorKey].AsBool())
	assert.Equal(t, "fetch", x[ErrorTypeKey].AsString())
}
