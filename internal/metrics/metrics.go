// Package metrics exposes prometheus counters for webhook sync and donor
// profile operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder is what handlers depend on; Nop satisfies it in tests.
type Recorder interface {
	RecordWebhookEvent(eventType, outcome string)
	RecordProfileOperation(action, outcome string)
}

type Collector struct {
	webhookEvents     *prometheus.CounterVec
	profileOperations *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "donor_registry_webhook_events_total",
			Help: "Identity webhook events processed, by event type and outcome.",
		}, []string{"event_type", "outcome"}),
		profileOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "donor_registry_profile_operations_total",
			Help: "Donor profile operations, by action and outcome.",
		}, []string{"action", "outcome"}),
	}

	reg.MustRegister(c.webhookEvents, c.profileOperations)
	return c
}

func (c *Collector) RecordWebhookEvent(eventType, outcome string) {
	c.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

func (c *Collector) RecordProfileOperation(action, outcome string) {
	c.profileOperations.WithLabelValues(action, outcome).Inc()
}

// Handler returns the prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type Nop struct{}

func (Nop) RecordWebhookEvent(string, string)     {}
func (Nop) RecordProfileOperation(string, string) {}
