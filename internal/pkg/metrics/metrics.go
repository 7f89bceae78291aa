// Package metrics exposes the Prometheus collectors of the order service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orders"

// Metrics owns a private registry so that several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPLatencyMS *prometheus.HistogramVec

	OrdersCreated  prometheus.Counter
	StatusUpdates  *prometheus.CounterVec
	Notifications  *prometheus.CounterVec
	EventsDropped  prometheus.Counter
	EventQueueSize prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPLatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "created_total",
			Help:      "Orders created.",
		}),
		StatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_updates_total",
			Help:      "Status update attempts by outcome.",
		}, []string{"result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Notification sends per channel and outcome.",
		}, []string{"channel", "outcome"}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "events_dropped_total",
			Help:      "Events dropped because the delivery queue was full.",
		}),
		EventQueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "queue_length",
			Help:      "Events waiting for delivery.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPLatencyMS,
		m.OrdersCreated,
		m.StatusUpdates,
		m.Notifications,
		m.EventsDropped,
		m.EventQueueSize,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatencyMS.WithLabelValues(method, route).Observe(float64(elapsed.Microseconds()) / 1000)
}

func (m *Metrics) OrderCreated() {
	m.OrdersCreated.Inc()
}

func (m *Metrics) StatusUpdated(result string) {
	m.StatusUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) NotificationSent(channel string) {
	m.Notifications.WithLabelValues(channel, "success").Inc()
}

func (m *Metrics) NotificationFailed(channel string) {
	m.Notifications.WithLabelValues(channel, "failure").Inc()
}

func (m *Metrics) EventDropped() {
	m.EventsDropped.Inc()
}

func (m *Metrics) QueueLength(n int) {
	m.EventQueueSize.Set(float64(n))
}
