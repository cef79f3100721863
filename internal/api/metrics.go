// SPDX-License-Identifier: MIT

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fileRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sportsguide_file_requests_total",
	Help: "Artifact requests by outcome",
}, []string{"outcome"}) // outcome=served|not_generated|internal_error

func recordFileRequest(outcome string) {
	fileRequestsTotal.WithLabelValues(outcome).Inc()
}
