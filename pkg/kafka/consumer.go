package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
)

type Consumer struct {
	reader  *kafka.Reader
	handler Handler
	log     *logger.Logger
}

func NewConsumer(brokers []string, topic, groupID string, handler Handler, log *logger.Logger) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" || groupID == "" {
		return nil, errors.New("topic and group ID are required")
	}
	if handler == nil {
		return nil, errors.New("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10 * 1024 * 1024,
		MaxWait:        500 * time.Millisecond,
		CommitInterval: 0, // commit explicitly after each handled message
		Logger:         kafka.LoggerFunc(func(msg string, args ...any) {}),
	})

	return &Consumer{reader: reader, handler: handler, log: log}, nil
}

// Run consumes until the context is cancelled. Handler failures are
// logged and the offset committed anyway: notification delivery is
// best-effort and must never wedge the partition.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		msg := Message{
			Key:       string(kafkaMsg.Key),
			Value:     kafkaMsg.Value,
			Timestamp: kafkaMsg.Time,
			Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		}
		for _, h := range kafkaMsg.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}

		if err := c.handler(ctx, msg); err != nil {
			c.log.Error("Failed to handle event",
				"event_id", msg.EventID(),
				"event_type", msg.EventType(),
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			c.log.Error("Failed to commit offset", "error", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
