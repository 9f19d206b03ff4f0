package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "outbox_events"
	EntityName = "outbox_event"

	FieldID          = "id"
	FieldPublishedAt = "published_at"
)

const AggregateReservation = "reservation"

const (
	EventReservationCreated   = "reservation.created"
	EventOccurrencesAccepted  = "reservation.occurrences_accepted"
	EventOccurrencesRejected  = "reservation.occurrences_rejected"
	EventOccurrencesCancelled = "reservation.occurrences_cancelled"
	HeaderEventType           = "event_type"
	HeaderAggregateType       = "aggregate_type"
)

// Event is a notification recorded in the same transaction as the change it describes.
type Event struct {
	ID            int64          `db:"id"             json:"id"`
	AggregateType string         `db:"aggregate_type" json:"aggregate_type"`
	AggregateID   string         `db:"aggregate_id"   json:"aggregate_id"`
	EventType     string         `db:"event_type"     json:"event_type"`
	Payload       types.JSONText `db:"payload"        json:"payload"`
	Attempts      int            `db:"attempts"       json:"attempts"`
	LastError     string         `db:"last_error"     json:"last_error"`
	CreatedAt     time.Time      `db:"created_at"     json:"created_at"`
	PublishedAt   *time.Time     `db:"published_at"   json:"published_at"`
}

func NewEvent(aggregateType, aggregateID, eventType string, payload any, at time.Time) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return Event{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       types.JSONText(raw),
		CreatedAt:     at,
	}, nil
}

// Envelope is what consumers receive on the topic.
type Envelope struct {
	ID            int64           `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

func (e Event) Envelope() Envelope {
	return Envelope{
		ID:            e.ID,
		Type:          e.EventType,
		AggregateType: e.AggregateType,
		AggregateID:   e.AggregateID,
		OccurredAt:    e.CreatedAt,
		Payload:       json.RawMessage(e.Payload),
	}
}
