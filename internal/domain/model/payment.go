package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// ParsePaymentStatus returns false for anything outside the three known states.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch st := PaymentStatus(s); st {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusCancelled:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are possible.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusCancelled
}

// CanTransitionTo allows only pending -> confirmed and pending -> cancelled.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentStatusPending && next.IsTerminal()
}

// BalanceDelta is the change applied to the owner's balance when a payment of
// amount enters status s.
func (s PaymentStatus) BalanceDelta(amount decimal.Decimal) decimal.Decimal {
	if s == PaymentStatusConfirmed {
		return amount
	}
	return decimal.Zero
}

// Payment represents a payment record
type Payment struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64           `gorm:"not null;index:idx_payments_user_created,priority:1" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	CardLast4 string          `gorm:"column:card_last4;size:4;not null" json:"card_last4"`
	PayeeName string          `gorm:"size:255;not null" json:"payee_name"`
	Status    PaymentStatus   `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt time.Time       `gorm:"index:idx_payments_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// IsOwnedBy reports whether userID owns the payment.
func (p *Payment) IsOwnedBy(userID int64) bool {
	return p.UserID == userID
}
