package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisherNotify(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisherWithWriter(w, "bookings")
	occurred := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	event := models.BookingEvent{
		Type:       models.EventBookingCreated,
		Booking:    models.Booking{ID: 12, FullName: "Ivan Petrov", Status: models.BookingPending},
		OccurredAt: occurred,
	}
	require.NoError(t, p.Notify(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "12", string(msg.Key))
	assert.Equal(t, occurred, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event", msg.Headers[0].Key)
	assert.Equal(t, models.EventBookingCreated, string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, models.EventBookingCreated, decoded["type"])
	booking := decoded["booking"].(map[string]interface{})
	assert.Equal(t, "Ivan Petrov", booking["full_name"])
	assert.Equal(t, "pending", booking["status"])
}

func TestPublisherNotifyError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newPublisherWithWriter(w, "bookings")

	err := p.Notify(context.Background(), models.BookingEvent{Type: models.EventBookingDeleted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Contains(t, err.Error(), "bookings")
}

func TestPublisherClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newPublisherWithWriter(w, "bookings").Close())
	assert.True(t, w.closed)
}
