package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "beautify"

// Metrics exposes counters/histograms for HTTP traffic, the booking ledger,
// payment confirmation and event publishing. A nil *Metrics is a valid no-op.
type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	bookingsCreated   prometheus.Counter
	bookingConflicts  *prometheus.CounterVec
	paymentsConfirmed *prometheus.CounterVec
	eventsPublished   *prometheus.CounterVec
	publishLatency    prometheus.Histogram

	gatherer prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method and status",
		}, []string{"method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Bookings inserted into the ledger",
		}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "conflicts_total",
			Help:      "Rejected duplicate bookings by detection point",
		}, []string{"reason"}),
		paymentsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "confirmations_total",
			Help:      "Payment confirmations by outcome",
		}, []string{"outcome"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events published to Kafka",
		}, []string{"status"}),
		publishLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "publish_duration_seconds",
			Help:      "Latency of Kafka publish calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.bookingsCreated,
		m.bookingConflicts,
		m.paymentsConfirmed,
		m.eventsPublished,
		m.publishLatency,
	)
	m.gatherer = reg
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, status).Inc()
	m.httpLatency.WithLabelValues(method).Observe(seconds)
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// BookingConflict records a rejected duplicate. reason is one of "lock",
// "exists" or "index".
func (m *Metrics) BookingConflict(reason string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(reason).Inc()
}

// PaymentConfirmed records the outcome of a confirmation: "paid",
// "unreconciled" (payment stored, booking not marked) or "failed".
func (m *Metrics) PaymentConfirmed(outcome string) {
	if m == nil {
		return
	}
	m.paymentsConfirmed.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePublish(failed bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.eventsPublished.WithLabelValues(status).Inc()
	m.publishLatency.Observe(seconds)
}
