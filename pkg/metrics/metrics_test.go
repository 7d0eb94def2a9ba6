package metrics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("reservation-service", reg)

	m.ReservationCreated()
	m.ReservationCreated()
	m.ReservationConflict()
	m.ReservationCancelled()
	m.NotificationFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservationsCreated.WithLabelValues("reservation-service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservationConflicts.WithLabelValues("reservation-service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservationsCancelled.WithLabelValues("reservation-service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsFailed.WithLabelValues("reservation-service")))
}

func TestMetrics_HTTPAndPool(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("svc", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/reservations/{reservationId}", 200, 15*time.Millisecond)
	m.SetDBPoolStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues("svc", "GET", "/api/v1/reservations/{reservationId}", "200")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbOpenConnections.WithLabelValues("svc")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbInUse.WithLabelValues("svc")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ReservationCreated()
		m.ReservationConflict()
		m.ReservationCancelled()
		m.NotificationFailed()
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveDBQuery("select", "ok", time.Millisecond)
		m.SetDBPoolStats(sql.DBStats{})
	})
}
