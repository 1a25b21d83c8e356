package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/cache"
	"github.com/savora/savora-cloud-go/internal/config"
	"github.com/savora/savora-cloud-go/internal/domain/service"
)

// CacheModule provides the Redis client and the stores built on it
var CacheModule = fx.Module("cache",
	fx.Provide(
		provideRedisClient,
		cache.NewOTPStore,
		provideOTPStore,
	),
)

func provideRedisClient(lc fx.Lifecycle, cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing Redis connection")
			return client.Close()
		},
	})

	return client, nil
}

func provideOTPStore(store *cache.OTPStore) service.OTPStore {
	return store
}
