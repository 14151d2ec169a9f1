package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jumper1221/Sber-test-task/internal/adapter/repository"
	domainRepo "github.com/Jumper1221/Sber-test-task/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	User         domainRepo.UserRepository
	Payment      domainRepo.PaymentRepository
	RefreshToken domainRepo.RefreshTokenRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(db, logger),
		Payment:      repository.NewPaymentRepository(db, logger),
		RefreshToken: repository.NewRefreshTokenRepository(db, logger),
	}
}
