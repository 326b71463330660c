// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

var (
	BallotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_ballots_total",
		Help: "Ballot submissions by outcome.",
	}, []string{"outcome"})

	AttendanceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_attendance_total",
		Help: "Attendance submissions by outcome.",
	}, []string{"outcome"})

	FinalizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_finalizations_total",
		Help: "Meeting finalization attempts by outcome.",
	}, []string{"outcome"})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_logins_total",
		Help: "Member login attempts by outcome.",
	}, []string{"outcome"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "pattern"})
)

// Outcome maps an operation error to a counter label. Errors matching one
// of the duplicate sentinels count as duplicates; any other error in
// rejected counts as a rejection.
func Outcome(err error, duplicate []error, rejected []error) string {
	if err == nil {
		return OutcomeAccepted
	}
	for _, d := range duplicate {
		if errors.Is(err, d) {
			return OutcomeDuplicate
		}
	}
	for _, r := range rejected {
		if errors.Is(err, r) {
			return OutcomeRejected
		}
	}
	return OutcomeError
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
