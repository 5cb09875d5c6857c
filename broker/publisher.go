package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher streams booking events to a Kafka topic keyed by booking id,
// so every event of one booking lands on the same partition.
type Publisher struct {
	writer messageWriter
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				utils.ErrorLogger.Printf("Failed to publish %d booking events to %s: %v", len(messages), topic, err)
			}
		},
	}
	return &Publisher{writer: writer, topic: topic}
}

func newPublisherWithWriter(w messageWriter, topic string) *Publisher {
	return &Publisher{writer: w, topic: topic}
}

// Notify publishes event as JSON with its type in the "event" header.
func (p *Publisher) Notify(ctx context.Context, event models.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.Booking.ID), 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Type)},
		},
	}

	utils.InfoLogger.Debugf("Publishing to Kafka [%s]: booking #%d", event.Type, event.Booking.ID)
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
