package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string // file backend
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open creates the configured backend. An empty backend name selects the
// memory cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendMemory:
		return NewMemoryCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache requires a directory")
		}
		return wrap(NewFileCache(cfg.Dir))
	case BackendRedis:
		return wrap(NewRedisCache(ctx, cfg.Redis))
	case BackendMongo:
		return wrap(NewMongoCache(ctx, cfg.Mongo))
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// wrap avoids returning a typed nil inside a non-nil interface.
func wrap[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
