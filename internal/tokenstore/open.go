package tokenstore

import (
	"fmt"

	"github.com/BerryBytes/consolectl/internal/config"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/afero"
)

// Open builds the KV backend selected by the store config.
func Open(cfg config.Store) (KV, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileKV(afero.NewOsFs(), cfg.Dir), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis store requires redis_addr")
		}
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return NewRedisKV(client, cfg.RedisPrefix, cfg.RedisTTL), nil
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
