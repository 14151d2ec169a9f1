package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	domainErrors "github.com/Jumper1221/Sber-test-task/internal/domain/errors"
	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
	domainRepo "github.com/Jumper1221/Sber-test-task/internal/domain/repository"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		r.logger.Error("Failed to create payment",
			zap.Int64("user_id", payment.UserID),
			zap.String("amount", payment.Amount.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int64, filter dto.PaymentFilter) ([]*model.Payment, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	var payments []*model.Payment
	if err := query.Order("created_at ASC").Order("id ASC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// Transition locks the payment row, flips its status only while it is still
// pending and applies the balance delta, all inside one transaction.
func (r *paymentRepository) Transition(ctx context.Context, id, userID int64, to model.PaymentStatus, note string) (*domainRepo.TransitionResult, error) {
	var result *domainRepo.TransitionResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := lockPayment(tx, id, userID)
		if err != nil {
			return err
		}
		if !payment.Status.CanTransitionTo(to) {
			return domainErrors.ErrPaymentNotPending
		}

		prev := payment.Status
		now := time.Now().UTC()

		// the WHERE on status guards against a concurrent transition even
		// where the driver cannot lock rows
		res := tx.Model(&model.Payment{}).
			Where("id = ? AND status = ?", id, string(model.PaymentStatusPending)).
			Updates(map[string]interface{}{"status": string(to), "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("failed to update payment status: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return domainErrors.ErrPaymentNotPending
		}

		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, payment.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user balance: %w", err)
		}

		delta := to.BalanceDelta(payment.Amount)
		balanceAfter := user.Balance.Add(delta)
		if !delta.IsZero() {
			if err := tx.Model(&model.User{}).
				Where("id = ?", user.ID).
				Updates(map[string]interface{}{
					"balance":    gorm.Expr("balance + ?", delta),
					"updated_at": now,
				}).Error; err != nil {
				return fmt.Errorf("failed to update balance: %w", err)
			}
		}

		details, err := json.Marshal(model.BalanceChange{
			BalanceBefore: user.Balance,
			BalanceAfter:  balanceAfter,
		})
		if err != nil {
			return fmt.Errorf("failed to encode log details: %w", err)
		}

		if err := tx.Create(&model.PaymentLog{
			PaymentID:   payment.ID,
			PerformedBy: userID,
			PrevStatus:  prev,
			NewStatus:   to,
			Amount:      payment.Amount,
			Note:        note,
			Details:     datatypes.JSON(details),
		}).Error; err != nil {
			return fmt.Errorf("failed to write payment log: %w", err)
		}

		payment.Status = to
		payment.UpdatedAt = now
		result = &domainRepo.TransitionResult{
			Payment:       payment,
			PrevStatus:    prev,
			BalanceBefore: user.Balance,
			BalanceAfter:  balanceAfter,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Payment status changed",
		zap.Int64("payment_id", id),
		zap.Int64("user_id", userID),
		zap.String("from", string(result.PrevStatus)),
		zap.String("to", string(to)),
		zap.String("balance_after", result.BalanceAfter.String()))

	return result, nil
}

func (r *paymentRepository) DeletePending(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := lockPayment(tx, id, userID)
		if err != nil {
			return err
		}
		if payment.Status != model.PaymentStatusPending {
			return domainErrors.ErrPaymentNotPending
		}

		if err := tx.Where("payment_id = ?", id).Delete(&model.PaymentLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete payment logs: %w", err)
		}
		res := tx.Where("id = ? AND status = ?", id, string(model.PaymentStatusPending)).Delete(&model.Payment{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete payment: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return domainErrors.ErrPaymentNotPending
		}
		return nil
	})
}

func (r *paymentRepository) ListLogs(ctx context.Context, paymentID int64) ([]*model.PaymentLog, error) {
	var logs []*model.PaymentLog
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").Order("id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment logs: %w", err)
	}
	return logs, nil
}

// lockPayment selects the payment FOR UPDATE; foreign payments look missing.
func lockPayment(tx *gorm.DB, id, userID int64) (*model.Payment, error) {
	var payment model.Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to lock payment: %w", err)
	}
	return &payment, nil
}
