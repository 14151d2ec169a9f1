package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domainRepo "github.com/Jumper1221/Sber-test-task/internal/domain/repository"
)

const revokedKeyPrefix = "payment:revoked_jti:"

// redisTokenBlocklist keeps revoked jti values as redis keys expiring with the token.
type redisTokenBlocklist struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisTokenBlocklist(client *redis.Client, logger *zap.Logger) domainRepo.TokenBlocklist {
	return &redisTokenBlocklist{
		client: client,
		logger: logger,
	}
}

func (b *redisTokenBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		b.logger.Error("Redis Set 실패",
			zap.String("jti", jti),
			zap.Error(err))
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *redisTokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// noopTokenBlocklist is used when redis is disabled; nothing is ever revoked.
type noopTokenBlocklist struct{}

func NewNoopTokenBlocklist() domainRepo.TokenBlocklist {
	return noopTokenBlocklist{}
}

func (noopTokenBlocklist) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopTokenBlocklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
