// Package errors holds the domain error values returned by the payment service.
// Each one carries a pkg/errors code, so the HTTP layer maps it without extra glue.
package errors

import (
	apperrors "github.com/Jumper1221/Sber-test-task/pkg/errors"
)

var (
	// Authentication
	ErrInvalidCredentials = apperrors.Unauthenticated("invalid login or password")
	ErrInvalidToken       = apperrors.Unauthenticated("invalid or expired token")
	ErrTokenRevoked       = apperrors.Unauthenticated("token has been revoked")
	ErrInvalidRefresh     = apperrors.Unauthenticated("invalid or expired refresh token")

	// Users
	ErrLoginTaken    = apperrors.Conflict("user with this login already exists")
	ErrUserNotFound  = apperrors.NotFound("user not found")
	ErrInvalidLogin  = apperrors.InvalidArgument("invalid login")
	ErrWeakPassword  = apperrors.InvalidArgument("password is too short")
	ErrLongPassword  = apperrors.InvalidArgument("password must be at most 72 bytes")
	ErrPasswordMatch = apperrors.InvalidArgument("passwords do not match")

	// Payments
	ErrPaymentNotFound   = apperrors.NotFound("payment not found")
	ErrPaymentNotPending = apperrors.Conflict("payment already finalized")
	ErrInvalidAmount     = apperrors.InvalidArgument("amount must be greater than 0 with at most 2 decimal places")
	ErrAmountTooLarge    = apperrors.InvalidArgument("amount exceeds the maximum of 12 integer digits")
	ErrInvalidCard       = apperrors.InvalidArgument("card_last4 must be exactly 4 digits")
	ErrInvalidPayee      = apperrors.InvalidArgument("payee_name is required")
	ErrInvalidStatus     = apperrors.InvalidArgument("status must be one of pending, confirmed, cancelled")
	ErrInvalidFilter     = apperrors.InvalidArgument("invalid amount filter")
	ErrInvalidPaymentID  = apperrors.InvalidArgument("invalid payment id")
)
