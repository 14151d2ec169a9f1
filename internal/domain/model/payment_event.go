package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPaymentCreated   = "payment.created"
	EventPaymentConfirmed = "payment.confirmed"
	EventPaymentCancelled = "payment.cancelled"
)

// PaymentEvent is published after a payment change has been committed.
type PaymentEvent struct {
	Type       string          `json:"type"`
	PaymentID  int64           `json:"payment_id"`
	UserID     int64           `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     PaymentStatus   `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventTypeFor returns the event type emitted when a payment enters status s.
func EventTypeFor(s PaymentStatus) string {
	switch s {
	case PaymentStatusConfirmed:
		return EventPaymentConfirmed
	case PaymentStatusCancelled:
		return EventPaymentCancelled
	default:
		return EventPaymentCreated
	}
}
