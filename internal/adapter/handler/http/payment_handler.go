package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	domainErrors "github.com/Jumper1221/Sber-test-task/internal/domain/errors"
	"github.com/Jumper1221/Sber-test-task/internal/domain/repository"
	"github.com/Jumper1221/Sber-test-task/internal/middleware/auth"
	"github.com/Jumper1221/Sber-test-task/internal/usecase"
)

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	paymentService *usecase.PaymentService
	logger         *zap.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func paymentID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainErrors.ErrInvalidPaymentID
	}
	return id, nil
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentService.Create(c.Request().Context(), user.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewPaymentResponse(payment))
}

// GetUserPayments handles GET /api/payments
func (h *PaymentHandler) GetUserPayments(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var query dto.ListPaymentsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return domainErrors.ErrInvalidFilter
	}

	payments, err := h.paymentService.List(c.Request().Context(), user.UserID, query)
	if err != nil {
		return err
	}

	h.logger.Debug("Payments listed",
		zap.Int64("user_id", user.UserID),
		zap.Int("count", len(payments)))

	return c.JSON(http.StatusOK, dto.NewPaymentListResponse(payments))
}

// GetPayment handles GET /api/payments/:id
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := paymentID(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewPaymentResponse(payment))
}

// ConfirmPayment handles POST /api/payments/:id/confirm
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	return h.transition(c, h.paymentService.Confirm)
}

// CancelPayment handles POST /api/payments/:id/cancel
func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	return h.transition(c, h.paymentService.Cancel)
}

type transitionFunc func(ctx context.Context, userID, paymentID int64) (*repository.TransitionResult, error)

func (h *PaymentHandler) transition(c echo.Context, apply transitionFunc) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := paymentID(c)
	if err != nil {
		return err
	}

	result, err := apply(c.Request().Context(), user.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PaymentTransitionResponse{
		Payment: dto.NewPaymentResponse(result.Payment),
		Balance: result.BalanceAfter.StringFixed(2),
	})
}

// GetPaymentLogs handles GET /api/payments/:id/logs
func (h *PaymentHandler) GetPaymentLogs(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := paymentID(c)
	if err != nil {
		return err
	}

	logs, err := h.paymentService.Logs(c.Request().Context(), user.UserID, id)
	if err != nil {
		return err
	}

	result := make([]dto.PaymentLogResponse, len(logs))
	for i, l := range logs {
		result[i] = dto.NewPaymentLogResponse(l)
	}

	return c.JSON(http.StatusOK, echo.Map{"logs": result})
}

// DeletePayment handles DELETE /api/payments/:id
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := paymentID(c)
	if err != nil {
		return err
	}

	if err := h.paymentService.Delete(c.Request().Context(), user.UserID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
