package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yeremiapane/restaurant-booking/models"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_http_request_duration_seconds",
		Help:    "Duration of HTTP request processing",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_events_total",
		Help: "Total number of committed booking changes by event type",
	}, []string{"event"})

	SlotConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_slot_conflicts_total",
		Help: "Total number of writes rejected because the slot was taken",
	})

	LiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "booking_live_clients",
		Help: "Number of connected websocket clients",
	})
)

// EventCounter counts booking events. It is registered as a notifier.
type EventCounter struct{}

func (EventCounter) Notify(_ context.Context, event models.BookingEvent) error {
	BookingEventsTotal.WithLabelValues(event.Type).Inc()
	return nil
}
