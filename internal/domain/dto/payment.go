package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
)

// CreatePaymentRequest is the body of POST /api/payments
type CreatePaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	CardLast4 string          `json:"card_last4" validate:"required,len=4,numeric"`
	PayeeName string          `json:"payee_name" validate:"required,max=255"`
}

// ListPaymentsQuery holds the raw query parameters of GET /api/payments
type ListPaymentsQuery struct {
	Status    string `query:"status"`
	MinAmount string `query:"min_amount"`
	MaxAmount string `query:"max_amount"`
}

// PaymentFilter narrows a user's payment list; nil fields are not applied.
type PaymentFilter struct {
	Status    *model.PaymentStatus
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

type PaymentResponse struct {
	ID        int64               `json:"id"`
	Amount    string              `json:"amount"`
	CardLast4 string              `json:"card_last4"`
	PayeeName string              `json:"payee_name"`
	Status    model.PaymentStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// PaymentTransitionResponse is returned by confirm and cancel.
type PaymentTransitionResponse struct {
	Payment PaymentResponse `json:"payment"`
	Balance string          `json:"balance"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}

type PaymentLogResponse struct {
	ID          int64               `json:"id"`
	PaymentID   int64               `json:"payment_id"`
	PerformedBy int64               `json:"performed_by"`
	PrevStatus  model.PaymentStatus `json:"prev_status"`
	NewStatus   model.PaymentStatus `json:"new_status"`
	Amount      string              `json:"amount"`
	Note        string              `json:"note,omitempty"`
	Details     json.RawMessage     `json:"details,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

func NewPaymentResponse(p *model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		Amount:    p.Amount.StringFixed(2),
		CardLast4: p.CardLast4,
		PayeeName: p.PayeeName,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPaymentListResponse(payments []*model.Payment) PaymentListResponse {
	resp := PaymentListResponse{Payments: make([]PaymentResponse, 0, len(payments)), Total: len(payments)}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, NewPaymentResponse(p))
	}
	return resp
}

func NewPaymentLogResponse(l *model.PaymentLog) PaymentLogResponse {
	return PaymentLogResponse{
		ID:          l.ID,
		PaymentID:   l.PaymentID,
		PerformedBy: l.PerformedBy,
		PrevStatus:  l.PrevStatus,
		NewStatus:   l.NewStatus,
		Amount:      l.Amount.StringFixed(2),
		Note:        l.Note,
		Details:     json.RawMessage(l.Details),
		CreatedAt:   l.CreatedAt,
	}
}
