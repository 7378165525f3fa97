// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors the engine and HTTP adapter record into.
type Metrics struct {
	Requests        *prometheus.CounterVec
	SessionsStarted prometheus.Counter
	SessionsResumed prometheus.Counter
	HandlerCalls    *prometheus.CounterVec
	MissingHandlers prometheus.Counter
	RequestDuration prometheus.Histogram
}

// Request outcome label values.
const (
	OutcomeContinue = "continue"
	OutcomeEnd      = "end"
	OutcomeError    = "error"
)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ussd",
			Name:      "requests_total",
			Help:      "USSD requests processed, by outcome.",
		}, []string{"outcome"}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ussd",
			Name:      "sessions_started_total",
			Help:      "Sessions bootstrapped from a new-session request.",
		}),
		SessionsResumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ussd",
			Name:      "sessions_resumed_total",
			Help:      "Sessions resumed through the resume prompt.",
		}),
		HandlerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ussd",
			Name:      "handler_invocations_total",
			Help:      "Action handler invocations, by action key.",
		}, []string{"action"}),
		MissingHandlers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ussd",
			Name:      "missing_handlers_total",
			Help:      "Option selections whose action key had no registered handler.",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ussd",
			Name:      "request_duration_seconds",
			Help:      "End-to-end request processing time.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.Requests,
		m.SessionsStarted,
		m.SessionsResumed,
		m.HandlerCalls,
		m.MissingHandlers,
		m.RequestDuration,
	)
	return m
}

// NewNop creates collectors bound to a throwaway registry, for callers
// that don't scrape.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
