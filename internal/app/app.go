// Package app assembles repositories, adapters and use cases into the services served over HTTP.
package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jumper1221/Sber-test-task/internal/adapter/repository"
	"github.com/Jumper1221/Sber-test-task/internal/config"
	domainRepo "github.com/Jumper1221/Sber-test-task/internal/domain/repository"
	"github.com/Jumper1221/Sber-test-task/internal/infrastructure/database"
	httpServer "github.com/Jumper1221/Sber-test-task/internal/infrastructure/http"
	"github.com/Jumper1221/Sber-test-task/internal/infrastructure/messaging"
	"github.com/Jumper1221/Sber-test-task/internal/usecase"
	pkgmessaging "github.com/Jumper1221/Sber-test-task/pkg/messaging"
)

// NewServices wires the use cases. redisClient may be nil, in which case token revocation
// is disabled and payment events are only logged.
func NewServices(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) httpServer.Services {
	repos := database.NewRepositories(db, logger)

	var (
		blocklist domainRepo.TokenBlocklist
		publisher domainRepo.EventPublisher
	)
	if redisClient != nil {
		blocklist = repository.NewRedisTokenBlocklist(redisClient, logger)
		publisher = messaging.NewRedisPublisher(pkgmessaging.FromClient(redisClient), cfg.Redis.EventsChannel, logger)
	} else {
		blocklist = repository.NewNoopTokenBlocklist()
		publisher = messaging.NewLogPublisher(logger)
	}

	tokens := usecase.NewTokenService(usecase.TokenConfig{
		Secret:          cfg.JWT.Secret,
		Issuer:          cfg.JWT.Issuer,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
	})

	return httpServer.Services{
		Auth: usecase.NewAuthService(
			repos.User,
			repos.RefreshToken,
			blocklist,
			tokens,
			usecase.NewPasswordHasher(cfg.Auth.HashCost),
			usecase.AuthConfig{PasswordMinLength: cfg.Auth.PasswordMinLength},
			logger,
		),
		Payments: usecase.NewPaymentService(repos.Payment, publisher, logger),
	}
}
