package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	domainErrors "github.com/Jumper1221/Sber-test-task/internal/domain/errors"
	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
	"github.com/Jumper1221/Sber-test-task/internal/domain/repository"
	"github.com/Jumper1221/Sber-test-task/internal/usecase"
	apperrors "github.com/Jumper1221/Sber-test-task/pkg/errors"
)

func newPaymentService() (*usecase.PaymentService, *MockPaymentRepository, *MockEventPublisher) {
	repo := new(MockPaymentRepository)
	pub := new(MockEventPublisher)
	return usecase.NewPaymentService(repo, pub, zap.NewNop()), repo, pub
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending payment and publishes event", func(t *testing.T) {
		service, repo, pub := newPaymentService()

		repo.On("Create", ctx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.UserID == 7 && p.Status == model.PaymentStatusPending &&
				p.Amount.Equal(decimal.NewFromInt(100)) && p.CardLast4 == "4000" && p.PayeeName == "X"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Payment).ID = 1
		}).Return(nil)
		pub.On("Publish", ctx, mock.MatchedBy(func(e model.PaymentEvent) bool {
			return e.Type == model.EventPaymentCreated && e.PaymentID == 1
		})).Return(nil)

		payment, err := service.Create(ctx, 7, dto.CreatePaymentRequest{
			Amount:    decimal.NewFromInt(100),
			CardLast4: "4000",
			PayeeName: " X ",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), payment.ID)
		assert.Equal(t, model.PaymentStatusPending, payment.Status)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		service, repo, pub := newPaymentService()
		repo.On("Create", ctx, mock.Anything).Return(nil)
		pub.On("Publish", ctx, mock.Anything).Return(errors.New("redis down"))

		_, err := service.Create(ctx, 7, dto.CreatePaymentRequest{Amount: decimal.NewFromInt(1), CardLast4: "1234", PayeeName: "Y"})
		assert.NoError(t, err)
	})

	invalid := []struct {
		name string
		req  dto.CreatePaymentRequest
		want error
	}{
		{"zero amount", dto.CreatePaymentRequest{Amount: decimal.Zero, CardLast4: "4000", PayeeName: "X"}, domainErrors.ErrInvalidAmount},
		{"negative amount", dto.CreatePaymentRequest{Amount: decimal.NewFromInt(-5), CardLast4: "4000", PayeeName: "X"}, domainErrors.ErrInvalidAmount},
		{"three decimals", dto.CreatePaymentRequest{Amount: decimal.RequireFromString("1.005"), CardLast4: "4000", PayeeName: "X"}, domainErrors.ErrInvalidAmount},
		{"too large", dto.CreatePaymentRequest{Amount: decimal.RequireFromString("1000000000000"), CardLast4: "4000", PayeeName: "X"}, domainErrors.ErrAmountTooLarge},
		{"short card", dto.CreatePaymentRequest{Amount: decimal.NewFromInt(1), CardLast4: "400", PayeeName: "X"}, domainErrors.ErrInvalidCard},
		{"letters in card", dto.CreatePaymentRequest{Amount: decimal.NewFromInt(1), CardLast4: "40a0", PayeeName: "X"}, domainErrors.ErrInvalidCard},
		{"blank payee", dto.CreatePaymentRequest{Amount: decimal.NewFromInt(1), CardLast4: "4000", PayeeName: "   "}, domainErrors.ErrInvalidPayee},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newPaymentService()

			_, err := service.Create(ctx, 7, tt.req)

			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, usecase.ValidateAmount(decimal.RequireFromString("0.01")))
	assert.NoError(t, usecase.ValidateAmount(decimal.RequireFromString("999999999999.99")))
	assert.NoError(t, usecase.ValidateAmount(decimal.RequireFromString("10.50")))
	assert.Error(t, usecase.ValidateAmount(decimal.RequireFromString("0.001")))
}

func TestPaymentService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to atomic transition", func(t *testing.T) {
		service, repo, pub := newPaymentService()
		confirmed := &model.Payment{ID: 1, UserID: 7, Amount: decimal.NewFromInt(100), Status: model.PaymentStatusConfirmed}
		repo.On("Transition", ctx, int64(1), int64(7), model.PaymentStatusConfirmed, mock.Anything).Return(&repository.TransitionResult{
			Payment:       confirmed,
			PrevStatus:    model.PaymentStatusPending,
			BalanceBefore: decimal.Zero,
			BalanceAfter:  decimal.NewFromInt(100),
		}, nil)
		pub.On("Publish", ctx, mock.MatchedBy(func(e model.PaymentEvent) bool {
			return e.Type == model.EventPaymentConfirmed
		})).Return(nil)

		result, err := service.Confirm(ctx, 7, 1)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusConfirmed, result.Payment.Status)
		assert.True(t, result.BalanceAfter.Equal(decimal.NewFromInt(100)))
		pub.AssertExpectations(t)
	})

	t.Run("second confirmation conflicts", func(t *testing.T) {
		service, repo, pub := newPaymentService()
		repo.On("Transition", ctx, int64(1), int64(7), model.PaymentStatusConfirmed, mock.Anything).
			Return(nil, domainErrors.ErrPaymentNotPending)

		_, err := service.Confirm(ctx, 7, 1)

		assert.ErrorIs(t, err, domainErrors.ErrPaymentNotPending)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrConflict))
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("non-positive id is not found", func(t *testing.T) {
		service, repo, _ := newPaymentService()

		_, err := service.Confirm(ctx, 7, 0)

		assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
		repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Cancel(t *testing.T) {
	ctx := context.Background()
	service, repo, pub := newPaymentService()
	repo.On("Transition", ctx, int64(2), int64(7), model.PaymentStatusCancelled, mock.Anything).Return(&repository.TransitionResult{
		Payment:    &model.Payment{ID: 2, UserID: 7, Status: model.PaymentStatusCancelled},
		PrevStatus: model.PaymentStatusPending,
	}, nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(e model.PaymentEvent) bool {
		return e.Type == model.EventPaymentCancelled
	})).Return(nil)

	result, err := service.Cancel(ctx, 7, 2)

	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCancelled, result.Payment.Status)
	repo.AssertExpectations(t)
}

func TestPaymentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("parses filters", func(t *testing.T) {
		service, repo, _ := newPaymentService()
		repo.On("ListByUser", ctx, int64(7), mock.MatchedBy(func(f dto.PaymentFilter) bool {
			return f.Status != nil && *f.Status == model.PaymentStatusConfirmed &&
				f.MinAmount != nil && f.MinAmount.Equal(decimal.NewFromInt(10)) && f.MaxAmount == nil
		})).Return([]*model.Payment{{ID: 1, UserID: 7}}, nil)

		payments, err := service.List(ctx, 7, dto.ListPaymentsQuery{Status: "CONFIRMED", MinAmount: "10"})

		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})

	bad := []dto.ListPaymentsQuery{
		{Status: "paid"},
		{MinAmount: "abc"},
		{MaxAmount: "-1"},
		{MinAmount: "50", MaxAmount: "10"},
	}
	for _, q := range bad {
		service, repo, _ := newPaymentService()
		_, err := service.List(ctx, 7, q)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument), "%+v", q)
		repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestPaymentService_Logs(t *testing.T) {
	ctx := context.Background()

	t.Run("foreign payment is not found", func(t *testing.T) {
		service, repo, _ := newPaymentService()
		repo.On("GetByIDForUser", ctx, int64(3), int64(7)).Return(nil, domainErrors.ErrPaymentNotFound)

		_, err := service.Logs(ctx, 7, 3)

		assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
		repo.AssertNotCalled(t, "ListLogs", mock.Anything, mock.Anything)
	})

	t.Run("returns logs of owned payment", func(t *testing.T) {
		service, repo, _ := newPaymentService()
		repo.On("GetByIDForUser", ctx, int64(3), int64(7)).Return(&model.Payment{ID: 3, UserID: 7}, nil)
		repo.On("ListLogs", ctx, int64(3)).Return([]*model.PaymentLog{{ID: 1, PaymentID: 3}}, nil)

		logs, err := service.Logs(ctx, 7, 3)

		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})
}

func TestPaymentService_Delete(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newPaymentService()
	repo.On("DeletePending", ctx, int64(4), int64(7)).Return(domainErrors.ErrPaymentNotPending)

	err := service.Delete(ctx, 7, 4)

	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotPending)
}
