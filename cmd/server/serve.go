package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/app"
	"github.com/Jumper1221/Sber-test-task/internal/infrastructure/cache"
	"github.com/Jumper1221/Sber-test-task/internal/infrastructure/database"
	grpcServer "github.com/Jumper1221/Sber-test-task/internal/infrastructure/grpc"
	httpServer "github.com/Jumper1221/Sber-test-task/internal/infrastructure/http"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the gRPC health server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, cfg.Log, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db, logger); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, logger); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		logger.Info("Redis disabled: token revocation off, payment events are logged only")
	}

	services := app.NewServices(cfg, db, redisClient, logger)

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	httpSrv := httpServer.NewServer(cfg, logger, services)
	go func() {
		if err := httpSrv.Start(); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var grpcSrv *grpcServer.Server
	if cfg.Server.GRPC.Enabled {
		grpcSrv = grpcServer.NewServer(
			grpcServer.WithAddr(cfg.Server.GRPC.Addr()),
			grpcServer.WithLogger(logger),
			grpcServer.WithServiceName(cfg.Service.Name),
		)
		go func() {
			if err := grpcSrv.Start(); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down servers...")
	case runErr = <-errCh:
		logger.Error("Server failed, shutting down", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if grpcSrv != nil {
		if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown gRPC server", zap.Error(err))
		}
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	logger.Info("Servers shut down successfully")
	return runErr
}
