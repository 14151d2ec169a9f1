package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
	"github.com/Jumper1221/Sber-test-task/pkg/messaging"
)

// eventsCmd tails the payment event channel, useful when checking a deployment.
func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print payment events published on the redis channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !cfg.Redis.Enabled {
				return fmt.Errorf("redis is disabled (set PAYMENT_REDIS_ENABLED=true)")
			}

			client, err := messaging.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			messages, err := client.Subscribe(ctx, cfg.Redis.EventsChannel)
			if err != nil {
				return err
			}
			logger.Info("Listening for payment events", zap.String("channel", cfg.Redis.EventsChannel))

			for msg := range messages {
				var event model.PaymentEvent
				if err := msg.Decode(&event); err != nil {
					logger.Warn("Skipping malformed event", zap.Error(err), zap.ByteString("payload", msg.Payload))
					continue
				}
				logger.Info("Payment event",
					zap.String("event", event.Type),
					zap.Int64("payment_id", event.PaymentID),
					zap.Int64("user_id", event.UserID),
					zap.String("amount", event.Amount.StringFixed(2)),
					zap.String("status", string(event.Status)),
					zap.Time("occurred_at", event.OccurredAt))
			}
			return nil
		},
	}
}
