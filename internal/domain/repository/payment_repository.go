package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
)

// TransitionResult describes a committed status change.
type TransitionResult struct {
	Payment       *model.Payment
	PrevStatus    model.PaymentStatus
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error

	// GetByIDForUser returns ErrPaymentNotFound for unknown ids and for payments of other users
	GetByIDForUser(ctx context.Context, id, userID int64) (*model.Payment, error)

	// ListByUser returns the user's payments ordered by created_at, id ascending
	ListByUser(ctx context.Context, userID int64, filter dto.PaymentFilter) ([]*model.Payment, error)

	// Transition moves a pending payment owned by userID to status `to` and applies
	// to.BalanceDelta(amount) to the owner's balance in one transaction, writing a
	// PaymentLog row. Non-pending payments return ErrPaymentNotPending.
	Transition(ctx context.Context, id, userID int64, to model.PaymentStatus, note string) (*TransitionResult, error)

	// DeletePending removes a pending payment and its logs
	DeletePending(ctx context.Context, id, userID int64) error

	ListLogs(ctx context.Context, paymentID int64) ([]*model.PaymentLog, error)
}
