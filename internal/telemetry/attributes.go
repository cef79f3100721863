// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by spans across the exporter.
const (
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"

	RefreshTriggerKey = "refresh.trigger"
	RefreshFetchKey   = "refresh.fetch"

	ExportMatchesKey    = "export.matches"
	ExportChannelsKey   = "export.channels"
	ExportProgrammesKey = "export.programmes"

	ScrapeEventsKey  = "scrape.events"
	ScrapeWrittenKey = "scrape.written"

	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// RefreshAttributes describe one refresh run.
func RefreshAttributes(trigger string, fetch bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(RefreshTriggerKey, trigger),
		attribute.Bool(RefreshFetchKey, fetch),
	}
}

// ScrapeAttributes describe the outcome of a scrape.
func ScrapeAttributes(events int, written bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(ScrapeEventsKey, events),
		attribute.Bool(ScrapeWrittenKey, written),
	}
}

// ExportAttributes describe the artifacts written by an export.
func ExportAttributes(matches, channels, programmes int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(ExportMatchesKey, matches),
		attribute.Int(ExportChannelsKey, channels),
		attribute.Int(ExportProgrammesKey, programmes),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
