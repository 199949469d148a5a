package kafka

import (
	"encoding/json"
	"time"
)

// Topics для Kafka.
const (
	TopicOrderEvents     = "bookstore.order.events"
	TopicDeadLetterQueue = "bookstore.dlq" // Dead Letter Queue для failed messages
)

// OutboxEnvelope — конверт, в котором outbox-сообщение уходит в Kafka.
// Payload передаётся как есть: его формирует сервис заказов.
type OutboxEnvelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}
