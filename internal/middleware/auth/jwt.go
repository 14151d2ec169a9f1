package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	apperrors "github.com/Jumper1221/Sber-test-task/pkg/errors"
)

// contextKey is used for storing user in context
type contextKey string

const (
	userContextKey contextKey = "authenticated_user"
)

// Reasons reported in the "details" of 401 responses
const (
	ReasonMissingHeader = "MISSING_AUTH_HEADER"
	ReasonInvalidFormat = "INVALID_AUTH_FORMAT"
	ReasonInvalidToken  = "INVALID_TOKEN"
)

// TokenVerifier resolves an access token to the user it was issued for.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*dto.AuthUser, error)
}

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Verifier  TokenVerifier
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

func unauthenticated(message, reason string) *apperrors.AppError {
	return apperrors.Unauthenticated(message).WithDetails(map[string]string{"reason": reason})
}

// JWTMiddleware creates a middleware that validates bearer access tokens
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return unauthenticated("Authorization header required", ReasonMissingHeader)
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			tokenString = strings.TrimSpace(tokenString)
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return unauthenticated("Invalid authorization header format. Expected: Bearer <token>", ReasonInvalidFormat)
			}

			authUser, err := config.Verifier.VerifyAccessToken(c.Request().Context(), tokenString)
			if err != nil {
				if !apperrors.HasCode(err, apperrors.ErrUnauthenticated) {
					return err
				}
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				var appErr *apperrors.AppError
				apperrors.As(err, &appErr)
				return unauthenticated(appErr.Message(), ReasonInvalidToken)
			}

			ctx := context.WithValue(c.Request().Context(), userContextKey, authUser)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("user_id", authUser.UserID)

			config.Logger.Debug("User authenticated successfully",
				zap.Int64("user_id", authUser.UserID),
				zap.String("path", path))

			return next(c)
		}
	}
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(c echo.Context) (*dto.AuthUser, bool) {
	user, ok := c.Request().Context().Value(userContextKey).(*dto.AuthUser)
	return user, ok && user != nil
}

// RequireAuth returns the authenticated user or a 401 error
func RequireAuth(c echo.Context) (*dto.AuthUser, error) {
	user, ok := GetUserFromContext(c)
	if !ok {
		return nil, unauthenticated("Authentication required", ReasonMissingHeader)
	}
	return user, nil
}
