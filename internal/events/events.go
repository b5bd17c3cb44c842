package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	TopicOrderCreated = "order.created"

	EventOrderCreated = "OrderCreated"
)

// Envelope is the versioned wrapper every published event uses.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type ItemAmount struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	UnitAmount int64  `json:"unit_amount"`
}

type OrderCreatedPayload struct {
	OrderID     string       `json:"order_id"`
	StoreID     string       `json:"store_id"`
	Items       []ItemAmount `json:"items"`
	TotalAmount int64        `json:"total_amount"`
}

// Publisher accepts a raw keyed message. *Producer implements it; a nil-safe
// helper below lets callers skip publishing when no broker is configured.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// PublishOrderCreated wraps the payload in an envelope and publishes it,
// keyed by order id so all events for one order stay ordered. A nil
// publisher disables publishing.
func PublishOrderCreated(p Publisher, producer, traceID string, payload OrderCreatedPayload) {
	if p == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: payload.OrderID,
		Payload:       mustMarshal(payload),
	}
	p.Publish([]byte(payload.OrderID), mustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
