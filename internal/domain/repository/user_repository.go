package repository

import (
	"context"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// Create inserts the user; a duplicate login returns domain ErrLoginTaken
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	ExistsByLogin(ctx context.Context, login string) (bool, error)
}
