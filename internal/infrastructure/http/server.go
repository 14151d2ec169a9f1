package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/Jumper1221/Sber-test-task/internal/adapter/handler/http"
	"github.com/Jumper1221/Sber-test-task/internal/config"
	"github.com/Jumper1221/Sber-test-task/internal/middleware/auth"
	"github.com/Jumper1221/Sber-test-task/internal/usecase"
	"github.com/Jumper1221/Sber-test-task/pkg/logger"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth     *usecase.AuthService
	Payments *usecase.PaymentService
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	services Services
}

func NewServer(cfg *config.Config, log *zap.Logger, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()

	logger.WithEchoLogger(e, log)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.HTTP.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	if cfg.Server.HTTP.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.HTTP.BodyLimit))
	}

	s := &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		services: services,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Addr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(s.services.Auth, s.logger)
	paymentHandler := handlers.NewPaymentHandler(s.services.Payments, s.logger)

	jwtConfig := auth.JWTConfig{
		Verifier: s.services.Auth,
		Logger:   s.logger,
	}

	api := s.echo.Group("/api")

	// Public routes
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)

	// Protected routes (require JWT authentication)
	protected := api.Group("", auth.JWTMiddleware(jwtConfig))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/users/me", authHandler.Me)

	payments := protected.Group("/payments")
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("", paymentHandler.GetUserPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.DELETE("/:id", paymentHandler.DeletePayment)
	payments.POST("/:id/confirm", paymentHandler.ConfirmPayment)
	payments.POST("/:id/cancel", paymentHandler.CancelPayment)
	payments.GET("/:id/logs", paymentHandler.GetPaymentLogs)
}
