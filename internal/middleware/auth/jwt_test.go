package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	domainErrors "github.com/Jumper1221/Sber-test-task/internal/domain/errors"
	apperrors "github.com/Jumper1221/Sber-test-task/pkg/errors"
)

// MockTokenVerifier is a mock implementation of TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) VerifyAccessToken(ctx context.Context, token string) (*dto.AuthUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthUser), args.Error(1)
}

func runMiddleware(t *testing.T, verifier TokenVerifier, authHeader string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	config := JWTConfig{
		Verifier:  verifier,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/health"},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, JWTMiddleware(config)(next)(c)
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func assertReason(t *testing.T, err error, reason string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrUnauthenticated, appErr.Code())
	assert.Equal(t, reason, appErr.Details()["reason"])
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	verifier := new(MockTokenVerifier)
	authUser := &dto.AuthUser{UserID: 42, Login: "alice", TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)}
	verifier.On("VerifyAccessToken", mock.Anything, "good-token").Return(authUser, nil)

	rec, err := runMiddleware(t, verifier, "Bearer good-token", func(c echo.Context) error {
		user, ok := GetUserFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, int64(42), user.UserID)
		assert.Equal(t, int64(42), c.Get("user_id"))
		return okHandler(c)
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	verifier.AssertExpectations(t)
}

func TestJWTMiddleware_MissingAuthorizationHeader(t *testing.T) {
	verifier := new(MockTokenVerifier)

	_, err := runMiddleware(t, verifier, "", okHandler)

	assertReason(t, err, ReasonMissingHeader)
	verifier.AssertNotCalled(t, "VerifyAccessToken", mock.Anything, mock.Anything)
}

func TestJWTMiddleware_InvalidFormat(t *testing.T) {
	for _, header := range []string{"good-token", "Basic dXNlcjpwYXNz", "Bearer "} {
		_, err := runMiddleware(t, new(MockTokenVerifier), header, okHandler)
		assertReason(t, err, ReasonInvalidFormat)
	}
}

func TestJWTMiddleware_RejectedToken(t *testing.T) {
	verifier := new(MockTokenVerifier)
	verifier.On("VerifyAccessToken", mock.Anything, "revoked").Return(nil, domainErrors.ErrTokenRevoked)

	_, err := runMiddleware(t, verifier, "bearer revoked", okHandler)

	assertReason(t, err, ReasonInvalidToken)
	status, body := apperrors.ToResponse(err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "token has been revoked", body.Error)
}

func TestJWTMiddleware_VerifierInfrastructureError(t *testing.T) {
	verifier := new(MockTokenVerifier)
	verifier.On("VerifyAccessToken", mock.Anything, "tok").Return(nil, apperrors.Internal("redis down", errors.New("dial tcp")))

	_, err := runMiddleware(t, verifier, "Bearer tok", okHandler)

	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
}

func TestRequireAuth_WithoutUser(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := RequireAuth(c)

	assertReason(t, err, ReasonMissingHeader)
}
