// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics holds the Prometheus business metrics of the exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream metrics
	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sportsguide_upstream_request_duration_seconds",
		Help:    "Provider API request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "result"}) // result=ok|timeout|network|http_4xx|http_5xx|bad_response

	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsguide_upstream_requests_total",
		Help: "Provider API requests by outcome",
	}, []string{"operation", "result"})

	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sportsguide_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})

	circuitBreakerTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsguide_circuit_breaker_trips_total",
		Help: "Times a circuit breaker opened",
	}, []string{"name", "reason"}) // reason=threshold_exceeded|half_open_failure

	// Business metrics
	matchesScraped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportsguide_matches_scraped",
		Help: "Sporting events parsed from the canvas (last scrape)",
	})

	matchesQualified = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportsguide_matches_qualified",
		Help: "Live matches with both teams (last export)",
	})

	channelsWritten = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sportsguide_channels_written",
		Help: "Channels written per artifact (last export)",
	}, []string{"artifact"}) // artifact=m3u|xmltv

	programmesWritten = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sportsguide_programmes_written",
		Help: "Programme blocks written to XMLTV by kind (last export)",
	}, []string{"kind"}) // kind=pre|event|post

	playablesWritten = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportsguide_playables_written",
		Help: "Playable deeplinks in the preview document (last export)",
	})

	artifactValid = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sportsguide_artifact_valid",
		Help: "Whether the last written artifact passed validation (1) or not (0)",
	}, []string{"type"}) // type=m3u|xmltv|preview

	// Refresh metrics
	refreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sportsguide_refresh_stage_duration_seconds",
		Help:    "Time spent per refresh stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"}) // stage=scrape|export

	refreshFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsguide_refresh_failures_total",
		Help: "Total number of refresh failures by stage",
	}, []string{"stage"}) // stage=config|fetch|write_raw|write_schedule|load|write_preview|write_m3u|write_xmltv

	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsguide_refreshes_total",
		Help: "Refresh runs by trigger and outcome",
	}, []string{"trigger", "outcome"}) // trigger=startup|schedule|watch|api; outcome=success|failure

	lastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportsguide_last_refresh_success_timestamp_seconds",
		Help: "Unix time of the last successful export",
	})

	configValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsguide_config_validation_errors_total",
		Help: "Total number of configuration validation errors",
	})
)

// ObserveUpstream records one provider API request.
func ObserveUpstream(operation, result string, d time.Duration) {
	upstreamRequestDuration.WithLabelValues(operation, result).Observe(d.Seconds())
	upstreamRequestsTotal.WithLabelValues(operation, result).Inc()
}

func RecordMatchesScraped(n int)   { matchesScraped.Set(float64(n)) }
func RecordMatchesQualified(n int) { matchesQualified.Set(float64(n)) }
func RecordPlayables(n int)        { playablesWritten.Set(float64(n)) }

func RecordChannels(artifact string, n int) {
	channelsWritten.WithLabelValues(artifact).Set(float64(n))
}

// RecordProgrammes sets the programme gauges from per-kind counts.
func RecordProgrammes(pre, event, post int) {
	programmesWritten.WithLabelValues("pre").Set(float64(pre))
	programmesWritten.WithLabelValues("event").Set(float64(event))
	programmesWritten.WithLabelValues("post").Set(float64(post))
}

func RecordArtifactValidity(fileType string, valid bool) {
	v := 0.0
	if valid {
		v = 1
	}
	artifactValid.WithLabelValues(fileType).Set(v)
}

func ObserveStage(stage string, d time.Duration) {
	refreshDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func IncRefreshFailure(stage string) { refreshFailuresTotal.WithLabelValues(stage).Inc() }
func IncConfigValidationError()      { configValidationErrors.Inc() }

// RecordRefresh counts a finished refresh run.
func RecordRefresh(trigger string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	refreshesTotal.WithLabelValues(trigger, outcome).Inc()
}

func SetLastSuccess(t time.Time) { lastSuccess.Set(float64(t.Unix())) }

// SetCircuitBreakerState exports the breaker state as a number.
func SetCircuitBreakerState(name, state string) {
	v := 0.0
	switch state {
	case "half-open":
		v = 1
	case "open":
		v = 2
	}
	circuitBreakerState.WithLabelValues(name).Set(v)
}

func RecordCircuitBreakerTrip(name, reason string) {
	circuitBreakerTrips.WithLabelValues(name, reason).Inc()
}
