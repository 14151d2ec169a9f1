package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	domainErrors "github.com/Jumper1221/Sber-test-task/internal/domain/errors"
	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
	"github.com/Jumper1221/Sber-test-task/internal/domain/repository"
	apperrors "github.com/Jumper1221/Sber-test-task/pkg/errors"
)

const (
	tokenTypeBearer = "bearer"
	maxLoginLength  = 50
)

// AuthConfig 인증 설정
type AuthConfig struct {
	PasswordMinLength int
}

// AuthService handles registration, login, token refresh/verification and logout.
type AuthService struct {
	users     repository.UserRepository
	refresh   repository.RefreshTokenRepository
	blocklist repository.TokenBlocklist
	tokens    *TokenService
	hasher    *PasswordHasher
	config    AuthConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	refresh repository.RefreshTokenRepository,
	blocklist repository.TokenBlocklist,
	tokens *TokenService,
	hasher *PasswordHasher,
	config AuthConfig,
	logger *zap.Logger,
) *AuthService {
	if config.PasswordMinLength < 1 {
		config.PasswordMinLength = 1
	}
	return &AuthService{
		users:     users,
		refresh:   refresh,
		blocklist: blocklist,
		tokens:    tokens,
		hasher:    hasher,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

// NormalizeLogin trims and lower-cases a login so lookups are case-insensitive.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	login := NormalizeLogin(req.Login)
	if login == "" || utf8.RuneCountInString(login) > maxLoginLength {
		return nil, domainErrors.ErrInvalidLogin
	}
	if err := s.validatePassword(req.Password, req.PasswordRepeat); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrLoginTaken
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &model.User{
		Login:        login,
		PasswordHash: hash,
		IsActive:     true,
	}
	// a concurrent registration surfaces as ErrLoginTaken from the unique index
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("login", user.Login))
	return user, nil
}

func (s *AuthService) validatePassword(password, repeat string) error {
	if len(password) > MaxPasswordBytes {
		return domainErrors.ErrLongPassword
	}
	if utf8.RuneCountInString(password) < s.config.PasswordMinLength {
		return domainErrors.ErrWeakPassword.WithDetails(map[string]string{
			"password": fmt.Sprintf("must be at least %d characters", s.config.PasswordMinLength),
		})
	}
	if repeat != "" && repeat != password {
		return domainErrors.ErrPasswordMatch
	}
	return nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown logins, inactive users and wrong passwords all return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByLogin(ctx, NormalizeLogin(req.Login))
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainErrors.ErrInvalidCredentials
	}

	ok, err := s.hasher.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to verify password", err)
	}
	if !ok {
		s.logger.Warn("Login failed",
			zap.Int64("user_id", user.ID))
		return nil, domainErrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented one is consumed and a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.TokenResponse, error) {
	hash := HashToken(req.RefreshToken)

	stored, err := s.refresh.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if stored.IsExpired(s.now()) {
		_, _ = s.refresh.Consume(ctx, hash)
		return nil, domainErrors.ErrInvalidRefresh
	}

	// losing the race to a concurrent refresh means the token was already used
	consumed, err := s.refresh.Consume(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domainErrors.ErrInvalidRefresh
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, domainErrors.ErrInvalidRefresh
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainErrors.ErrInvalidRefresh
	}

	if _, err := s.refresh.DeleteExpired(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("Failed to purge expired refresh tokens",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.TokenResponse, error) {
	access, _, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to issue access token", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.Internal("failed to issue refresh token", err)
	}
	if err := s.refresh.Create(ctx, &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: refresh.Hash,
		ExpiresAt: refresh.ExpiresAt,
	}); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh.Raw,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(s.tokens.AccessTokenTTL().Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}

// VerifyAccessToken resolves the caller of a protected endpoint.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*dto.AuthUser, error) {
	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug("Access token rejected", zap.Error(err))
		return nil, domainErrors.ErrInvalidToken
	}

	revoked, err := s.blocklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to check token revocation", err)
	}
	if revoked {
		return nil, domainErrors.ErrTokenRevoked
	}

	userID, _ := claims.UserID()
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, domainErrors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainErrors.ErrInvalidToken
	}

	return &dto.AuthUser{
		UserID:    user.ID,
		Login:     user.Login,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes the current access token until it expires and, when given,
// deletes the caller's refresh token.
func (s *AuthService) Logout(ctx context.Context, user *dto.AuthUser, req dto.LogoutRequest) error {
	if err := s.blocklist.Revoke(ctx, user.TokenID, time.Until(user.ExpiresAt)); err != nil {
		return apperrors.Internal("failed to revoke access token", err)
	}

	if req.RefreshToken != "" {
		hash := HashToken(req.RefreshToken)
		stored, err := s.refresh.GetByHash(ctx, hash)
		if err != nil && !apperrors.Is(err, domainErrors.ErrInvalidRefresh) {
			return err
		}
		// another user's token is left untouched
		if stored != nil && stored.UserID == user.UserID {
			if _, err := s.refresh.Consume(ctx, hash); err != nil {
				return err
			}
		}
	}

	s.logger.Info("User logged out", zap.Int64("user_id", user.UserID))
	return nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
