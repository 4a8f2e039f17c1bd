package notifications

import (
	"context"

	"github.com/shayzimm/yallambee-booking-app-backend/pkg/kafka"
)

type Publisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent) error
	PublishUserEvent(ctx context.Context, eventType string, event UserEvent) error
}

const source = "yallambee-api"

type kafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) Publisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent) error {
	// Keyed by booking so create/update for one booking stay ordered.
	msg, err := kafka.NewMessage(event.BookingID, eventType, source, event)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) PublishUserEvent(ctx context.Context, eventType string, event UserEvent) error {
	msg, err := kafka.NewMessage(event.UserID, eventType, source, event)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

// noopPublisher stands in when no brokers are configured, e.g. local
// development without Kafka.
type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishBookingEvent(context.Context, string, BookingEvent) error { return nil }
func (noopPublisher) PublishUserEvent(context.Context, string, UserEvent) error       { return nil }
