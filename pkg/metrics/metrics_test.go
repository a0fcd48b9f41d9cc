package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBusinessCounters(t *testing.T) {
	m := NewWithRegistry("booking-service", prometheus.NewRegistry())

	m.BookingCreated()
	m.BookingCreated()
	m.SlotConflict()
	m.StatusTransition("pending", "confirmed")
	m.Notification("booking_request", "sent")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("pending", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("booking_request", "sent")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BookingCreated()
		m.SlotConflict()
		m.StatusTransition("pending", "cancelled")
		m.Notification("new_message", "failed")
	})
}
