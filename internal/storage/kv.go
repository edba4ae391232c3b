// Package storage persists task collections and session records in a
// key-value store.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KV.Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// KV is a flat key-value store. Each Set replaces the previous value
// wholesale; there are no transactions across keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
