package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/infra/locking"
	"github.com/JulianHBuecher/ev-server/internal/pkg/config"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewLockService,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := locking.Connect(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return client, nil
}

func NewLockService(client *redis.Client, cfg config.Config) *locking.RedisLockService {
	return locking.NewRedisLockService(client, cfg.Redis.LockTTL)
}
