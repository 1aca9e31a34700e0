package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP(http.MethodGet, "200", 0.01)
		m.BookingCreated()
		m.BookingConflict("exists")
		m.PaymentConfirmed("paid")
		m.ObservePublish(false, 0.001)
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.BookingCreated()
	m.BookingCreated()
	m.BookingConflict("exists")
	m.BookingConflict("index")
	m.BookingConflict("exists")
	m.PaymentConfirmed("unreconciled")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("exists")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("index")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsConfirmed.WithLabelValues("unreconciled")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTP(http.MethodPost, "201", 0.02)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `beautify_http_requests_total{method="POST",status="201"} 1`))
}
