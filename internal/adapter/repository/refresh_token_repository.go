package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/Jumper1221/Sber-test-task/internal/domain/errors"
	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
	domainRepo "github.com/Jumper1221/Sber-test-task/internal/domain/repository"
)

type refreshTokenRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRefreshTokenRepository(db *gorm.DB, logger *zap.Logger) domainRepo.RefreshTokenRepository {
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrInvalidRefresh
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &token, nil
}

func (r *refreshTokenRepository) Consume(ctx context.Context, tokenHash string) (bool, error) {
	res := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&model.RefreshToken{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete refresh token: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at <= ?", userID, now).
		Delete(&model.RefreshToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge refresh tokens: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		r.logger.Debug("Purged expired refresh tokens",
			zap.Int64("user_id", userID),
			zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}
