package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentLog is an audit row written in the same transaction as a status change.
type PaymentLog struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentID   int64           `gorm:"not null;index" json:"payment_id"`
	PerformedBy int64           `gorm:"not null" json:"performed_by"`
	PrevStatus  PaymentStatus   `gorm:"size:20;not null" json:"prev_status"`
	NewStatus   PaymentStatus   `gorm:"size:20;not null" json:"new_status"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Note        string          `gorm:"size:255" json:"note,omitempty"`
	Details     datatypes.JSON  `json:"details,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	Payment *Payment `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PaymentLog) TableName() string {
	return "payment_logs"
}

// BalanceChange is stored in PaymentLog.Details.
type BalanceChange struct {
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}
