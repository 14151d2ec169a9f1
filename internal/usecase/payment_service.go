package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	domainErrors "github.com/Jumper1221/Sber-test-task/internal/domain/errors"
	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
	"github.com/Jumper1221/Sber-test-task/internal/domain/repository"
)

const (
	amountScale        = 2
	maxAmountIntDigits = 12
)

// PaymentService implements payment creation, confirmation, cancellation and listing.
type PaymentService struct {
	payments  repository.PaymentRepository
	publisher repository.EventPublisher
	logger    *zap.Logger
}

func NewPaymentService(
	payments repository.PaymentRepository,
	publisher repository.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		publisher: publisher,
		logger:    logger,
	}
}

// ValidateAmount accepts positive amounts with at most 2 fractional and 12 integer digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainErrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return domainErrors.ErrInvalidAmount
	}
	if len(amount.Truncate(0).String()) > maxAmountIntDigits {
		return domainErrors.ErrAmountTooLarge
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *PaymentService) Create(ctx context.Context, userID int64, req dto.CreatePaymentRequest) (*model.Payment, error) {
	if err := ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if len(req.CardLast4) != 4 || !isDigits(req.CardLast4) {
		return nil, domainErrors.ErrInvalidCard
	}
	payee := strings.TrimSpace(req.PayeeName)
	if payee == "" {
		return nil, domainErrors.ErrInvalidPayee
	}

	payment := &model.Payment{
		UserID:    userID,
		Amount:    req.Amount.Round(amountScale),
		CardLast4: req.CardLast4,
		PayeeName: payee,
		Status:    model.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Payment created",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("user_id", userID),
		zap.String("amount", payment.Amount.String()))

	s.publish(ctx, payment)
	return payment, nil
}

// Confirm moves a pending payment to confirmed and credits the owner's balance.
func (s *PaymentService) Confirm(ctx context.Context, userID, paymentID int64) (*repository.TransitionResult, error) {
	return s.transition(ctx, userID, paymentID, model.PaymentStatusConfirmed, "confirmed by owner")
}

// Cancel moves a pending payment to cancelled; the balance is not touched.
func (s *PaymentService) Cancel(ctx context.Context, userID, paymentID int64) (*repository.TransitionResult, error) {
	return s.transition(ctx, userID, paymentID, model.PaymentStatusCancelled, "cancelled by owner")
}

func (s *PaymentService) transition(ctx context.Context, userID, paymentID int64, to model.PaymentStatus, note string) (*repository.TransitionResult, error) {
	if paymentID <= 0 {
		return nil, domainErrors.ErrPaymentNotFound
	}

	result, err := s.payments.Transition(ctx, paymentID, userID, to, note)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, result.Payment)
	return result, nil
}

// ParsePaymentFilter converts raw query values into a PaymentFilter.
func ParsePaymentFilter(q dto.ListPaymentsQuery) (dto.PaymentFilter, error) {
	var filter dto.PaymentFilter

	if q.Status != "" {
		status, ok := model.ParsePaymentStatus(strings.ToLower(q.Status))
		if !ok {
			return filter, domainErrors.ErrInvalidStatus
		}
		filter.Status = &status
	}

	parseAmount := func(raw, field string) (*decimal.Decimal, error) {
		if raw == "" {
			return nil, nil
		}
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			return nil, domainErrors.ErrInvalidFilter.WithDetails(map[string]string{field: "must be a non-negative number"})
		}
		return &v, nil
	}

	var err error
	if filter.MinAmount, err = parseAmount(q.MinAmount, "min_amount"); err != nil {
		return filter, err
	}
	if filter.MaxAmount, err = parseAmount(q.MaxAmount, "max_amount"); err != nil {
		return filter, err
	}
	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return filter, domainErrors.ErrInvalidFilter.WithDetails(map[string]string{"min_amount": "must not exceed max_amount"})
	}
	return filter, nil
}

// List returns only the caller's payments, oldest first.
func (s *PaymentService) List(ctx context.Context, userID int64, q dto.ListPaymentsQuery) ([]*model.Payment, error) {
	filter, err := ParsePaymentFilter(q)
	if err != nil {
		return nil, err
	}
	return s.payments.ListByUser(ctx, userID, filter)
}

func (s *PaymentService) Get(ctx context.Context, userID, paymentID int64) (*model.Payment, error) {
	return s.payments.GetByIDForUser(ctx, paymentID, userID)
}

// Logs returns the audit trail of an owned payment.
func (s *PaymentService) Logs(ctx context.Context, userID, paymentID int64) ([]*model.PaymentLog, error) {
	if _, err := s.payments.GetByIDForUser(ctx, paymentID, userID); err != nil {
		return nil, err
	}
	return s.payments.ListLogs(ctx, paymentID)
}

// Delete removes a payment that is still pending.
func (s *PaymentService) Delete(ctx context.Context, userID, paymentID int64) error {
	if err := s.payments.DeletePending(ctx, paymentID, userID); err != nil {
		return err
	}
	s.logger.Info("Payment deleted",
		zap.Int64("payment_id", paymentID),
		zap.Int64("user_id", userID))
	return nil
}

// publish is best effort: the change is already committed.
func (s *PaymentService) publish(ctx context.Context, p *model.Payment) {
	event := model.PaymentEvent{
		Type:       model.EventTypeFor(p.Status),
		PaymentID:  p.ID,
		UserID:     p.UserID,
		Amount:     p.Amount,
		Status:     p.Status,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish payment event",
			zap.String("event", event.Type),
			zap.Int64("payment_id", p.ID),
			zap.Error(err))
	}
}
