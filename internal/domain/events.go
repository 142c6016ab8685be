package domain

import "time"

// Event types
const (
	EventTypeSplitCreated    = "split.created"
	EventTypeSplitCompleted  = "split.completed"
	EventTypeSplitCancelled  = "split.cancelled"
	EventTypePaymentRecorded = "payment.recorded"
)

// Aggregate types
const (
	AggregateTypeSplit   = "split"
	AggregateTypePayment = "payment"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
