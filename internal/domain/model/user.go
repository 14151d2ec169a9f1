package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account holder. Balance is changed only by payment confirmation.
type User struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Login        string          `gorm:"size:50;not null;uniqueIndex" json:"login"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	Balance      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
