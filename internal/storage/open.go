package storage

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string
}

// Open creates the KV named by opts.Backend. An empty backend is SQLite.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		db, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendRedis:
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = DefaultRedisPrefix
		}
		r, err := DialRedis(ctx, opts.RedisAddr, prefix)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}
