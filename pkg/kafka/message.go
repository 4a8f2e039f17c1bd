package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is the transport-level envelope for domain events.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// Header keys shared by producer and consumer.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// NewMessage builds a message with a JSON-encoded payload and the
// standard headers. The key selects the partition, so events for one
// entity stay ordered.
func NewMessage(key, eventType, source string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now()
	return Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:   uuid.New().String(),
			HeaderEventType: eventType,
			HeaderSource:    source,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
	}, nil
}

func (m *Message) EventType() string {
	return m.Headers[HeaderEventType]
}

func (m *Message) EventID() string {
	return m.Headers[HeaderEventID]
}

func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

// Handler processes one consumed message. A nil return commits the
// offset; an error leaves the message for redelivery.
type Handler func(ctx context.Context, msg Message) error
