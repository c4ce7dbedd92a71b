package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	EventsProcessed   *prometheus.CounterVec
	PushTicks         prometheus.Counter
	PushFailures      prometheus.Counter
	WebhookDeliveries prometheus.Counter
	WebhookFailures   prometheus.Counter
	WebhookDropped    prometheus.Counter
	SnapshotSaves     prometheus.Counter
	SnapshotFailures  prometheus.Counter
}

// New creates and registers all collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		EventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playerstats_events_processed_total",
			Help: "Game events processed by the tracker",
		}, []string{"type"}),
		PushTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playerstats_push_ticks_total",
			Help: "Remote sync ticks attempted",
		}),
		PushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playerstats_push_failures_total",
			Help: "Remote sync ticks that failed",
		}),
		WebhookDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playerstats_webhook_deliveries_total",
			Help: "Webhook messages delivered",
		}),
		WebhookFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playerstats_webhook_failures_total",
			Help: "Webhook messages that failed to deliver",
		}),
		WebhookDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playerstats_webhook_dropped_total",
			Help: "Webhook messages dropped because the queue was full",
		}),
		SnapshotSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playerstats_snapshot_saves_total",
			Help: "Snapshot saves attempted",
		}),
		SnapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playerstats_snapshot_failures_total",
			Help: "Snapshot saves that failed",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.EventsProcessed,
		m.PushTicks,
		m.PushFailures,
		m.WebhookDeliveries,
		m.WebhookFailures,
		m.WebhookDropped,
		m.SnapshotSaves,
		m.SnapshotFailures,
	)

	return m
}

// Handler returns the scrape handler for the private registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
