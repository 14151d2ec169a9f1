package repository

import (
	"context"
	"time"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
)

// RefreshTokenRepository stores hashed refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	// Consume deletes the token row; false means it was already used or never existed
	Consume(ctx context.Context, tokenHash string) (bool, error)
	DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error)
}

// TokenBlocklist tracks revoked access token ids (jti) until they expire
type TokenBlocklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// EventPublisher delivers payment events after commit
type EventPublisher interface {
	Publish(ctx context.Context, event model.PaymentEvent) error
}
