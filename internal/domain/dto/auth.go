package dto

import (
	"time"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
)

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Login          string `json:"login" validate:"required,max=50"`
	Password       string `json:"password" validate:"required,max=72"`
	PasswordRepeat string `json:"password_repeat,omitempty" validate:"omitempty,eqfield=Password"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke alongside the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Login:     u.Login,
		Balance:   u.Balance.StringFixed(2),
		CreatedAt: u.CreatedAt,
	}
}
