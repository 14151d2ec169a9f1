package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/dto"
	"github.com/Jumper1221/Sber-test-task/internal/middleware/auth"
	"github.com/Jumper1221/Sber-test-task/internal/usecase"
)

type AuthHandler struct {
	authService *usecase.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *usecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tokens, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	// the body is optional
	var req dto.LogoutRequest
	if c.Request().ContentLength > 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}

	if err := h.authService.Logout(c.Request().Context(), user, req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/users/me
func (h *AuthHandler) Me(c echo.Context) error {
	authUser, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), authUser.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
