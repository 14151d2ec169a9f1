package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
	"github.com/Jumper1221/Sber-test-task/internal/domain/repository"
	"github.com/Jumper1221/Sber-test-task/pkg/messaging"
)

// redisPublisher sends payment events as JSON to a redis pub/sub channel.
type redisPublisher struct {
	client  messaging.RedisClient
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(client messaging.RedisClient, channel string, logger *zap.Logger) repository.EventPublisher {
	return &redisPublisher{client: client, channel: channel, logger: logger}
}

func (p *redisPublisher) Publish(ctx context.Context, event model.PaymentEvent) error {
	if err := p.client.Publish(ctx, p.channel, event); err != nil {
		return err
	}
	p.logger.Debug("Payment event published",
		zap.String("channel", p.channel),
		zap.String("event", event.Type),
		zap.Int64("payment_id", event.PaymentID))
	return nil
}

// logPublisher is used when redis is disabled; events only reach the log.
type logPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) repository.EventPublisher {
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(_ context.Context, event model.PaymentEvent) error {
	p.logger.Debug("Payment event",
		zap.String("event", event.Type),
		zap.Int64("payment_id", event.PaymentID),
		zap.Int64("user_id", event.UserID),
		zap.String("status", string(event.Status)))
	return nil
}
