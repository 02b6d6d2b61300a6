package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

// RedisReloadBus carries reload signals between service instances sharing
// one namespace.
type RedisReloadBus struct {
	rdb     *redis.Client
	channel string
	logger  *zap.Logger
}

func NewRedisReloadBus(rdb *redis.Client, namespace string, logger *zap.Logger) *RedisReloadBus {
	return &RedisReloadBus{
		rdb:     rdb,
		channel: namespace + ":widget:reload",
		logger:  logger,
	}
}

func (b *RedisReloadBus) Channel() string {
	return b.channel
}

func (b *RedisReloadBus) PublishReload(ctx context.Context, signal domain.ReloadSignal) error {
	payload, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("failed to encode reload signal: %w", err)
	}

	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Listen blocks until ctx is done, handing every decodable signal to fn.
func (b *RedisReloadBus) Listen(ctx context.Context, fn func(domain.ReloadSignal)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe %s: %w", b.channel, err)
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			var signal domain.ReloadSignal
			if err := json.Unmarshal([]byte(msg.Payload), &signal); err != nil {
				b.logger.Warn("dropping malformed reload signal", zap.String("payload", msg.Payload), zap.Error(err))
				continue
			}
			fn(signal)
		}
	}
}
