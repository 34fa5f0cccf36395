// Package events publishes payment lifecycle events.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	PaymentAccepted  EventType = "payment.accepted"
	PaymentProcessed EventType = "payment.processed"
	PaymentCompleted EventType = "payment.completed"
	PaymentPaid      EventType = "payment.paid"
)

// Event describes a payment that changed status.
type Event struct {
	Type            EventType       `json:"type"`
	PaymentID       uint            `json:"payment_id"`
	StoreID         uint            `json:"store_id"`
	Amount          decimal.Decimal `json:"amount"`
	AvailableAmount decimal.Decimal `json:"available_amount"`
	Reference       string          `json:"reference,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// Publisher delivers events after the state change is committed.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...Event) error { return nil }
