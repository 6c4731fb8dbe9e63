package service

import (
	"github.com/cafeledger/cafeledger/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// newRedisClient returns nil when no redis address is configured; the
// distributed settlement lock is optional.
func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

var Module = fx.Module("orderflow",
	fx.Provide(
		newRedisClient,
		NewLocker,
		New,
	),
)
