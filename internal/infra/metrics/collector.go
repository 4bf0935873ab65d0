// Package metrics exposes Prometheus counters for the auth subsystem.
package metrics

import (
	"net/http"

	"internhub/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements service.MetricsRecorder with Prometheus counters.
type Collector struct {
	syncs          *prometheus.CounterVec
	guardDecisions *prometheus.CounterVec
	sessionEvents  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "internhub_account_sync_total",
			Help: "Account synchronizations by outcome",
		}, []string{"outcome"}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "internhub_guard_decisions_total",
			Help: "Route guard decisions by kind",
		}, []string{"decision"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "internhub_session_events_total",
			Help: "Identity provider session events by type",
		}, []string{"event"}),
	}

	reg.MustRegister(
		c.syncs,
		c.guardDecisions,
		c.sessionEvents,
	)

	return c
}

// NewRecorder registers a Collector on reg and returns it as a service.MetricsRecorder.
func NewRecorder(reg prometheus.Registerer) service.MetricsRecorder {
	return NewCollector(reg)
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func (c *Collector) RecordSync(outcome service.SyncOutcome) {
	c.syncs.WithLabelValues(string(outcome)).Inc()
}

func (c *Collector) RecordGuardDecision(kind string) {
	c.guardDecisions.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordSessionEvent(eventType service.SessionEventType) {
	c.sessionEvents.WithLabelValues(string(eventType)).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
