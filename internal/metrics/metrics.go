package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Notification outcomes.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationDropped = "dropped"
)

// Metrics holds Prometheus collectors of the service on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	OrdersSubmitted *prometheus.CounterVec
	OrdersApproved  prometheus.Counter
	Notifications   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a registry with process, Go runtime and service metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		OrdersSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reelorders_orders_submitted_total",
			Help: "Total number of orders accepted, by service type",
		}, []string{"service_type"}),
		OrdersApproved: factory.NewCounter(prometheus.CounterOpts{
			Name: "reelorders_orders_approved_total",
			Help: "Total number of orders approved by an operator",
		}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reelorders_notifications_total",
			Help: "Order notifications by outcome",
		}, []string{"result"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reelorders_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// OrderSubmitted records an accepted order.
func (m *Metrics) OrderSubmitted(serviceType string) {
	if m == nil {
		return
	}
	m.OrdersSubmitted.WithLabelValues(serviceType).Inc()
}

// OrderApproved records a pending to approved transition.
func (m *Metrics) OrderApproved() {
	if m == nil {
		return
	}
	m.OrdersApproved.Inc()
}

// NotificationResult records the outcome of one notification attempt.
func (m *Metrics) NotificationResult(result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(result).Inc()
}

// ObserveRequest records the duration of a served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry, DisableCompression: true})
}
