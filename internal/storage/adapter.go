package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"todo/internal/service"
)

// Keys used in the store.
const (
	UserKey       = "user"
	SessionKey    = "session"
	SigningKeyKey = "session_key"
	tasksPrefix   = "tasks_"
)

// TasksKey returns the key holding a user's task collection.
func TasksKey(userID string) string {
	return tasksPrefix + userID
}

// Adapter reads and writes JSON records on top of a KV.
type Adapter struct {
	kv  KV
	log *slog.Logger
}

// NewAdapter creates an adapter over kv. A nil logger discards output.
func NewAdapter(kv KV, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Adapter{kv: kv, log: log}
}

// LoadTasks returns the user's persisted collection in stored order.
// A missing or malformed value yields an empty collection; only backend
// failures are returned as errors.
func (a *Adapter) LoadTasks(ctx context.Context, userID string) ([]service.Task, error) {
	key := TasksKey(userID)
	data, err := a.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []service.Task{}, nil
		}
		return nil, err
	}

	var tasks []service.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		a.log.Warn("discarding malformed task collection", "key", key, "err", err)
		return []service.Task{}, nil
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// SaveTasks replaces the user's persisted collection.
func (a *Adapter) SaveTasks(ctx context.Context, userID string, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	if err := a.kv.Set(ctx, TasksKey(userID), data); err != nil {
		return err
	}
	a.log.Debug("saved task collection", "user", userID, "count", len(tasks))
	return nil
}

// LoadUser returns the persisted session user record.
// A malformed record is treated as absent.
func (a *Adapter) LoadUser(ctx context.Context) (service.User, bool, error) {
	data, err := a.kv.Get(ctx, UserKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return service.User{}, false, nil
		}
		return service.User{}, false, err
	}
	var u service.User
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		a.log.Warn("discarding malformed session record", "err", err)
		return service.User{}, false, nil
	}
	return u, true, nil
}

// SaveUser persists the session user record.
func (a *Adapter) SaveUser(ctx context.Context, u service.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return a.kv.Set(ctx, UserKey, data)
}

// Value returns a raw string value.
func (a *Adapter) Value(ctx context.Context, key string) (string, bool, error) {
	data, err := a.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// SetValue stores a raw string value.
func (a *Adapter) SetValue(ctx context.Context, key, value string) error {
	return a.kv.Set(ctx, key, []byte(value))
}

// Delete removes the given keys.
func (a *Adapter) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if err := a.kv.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying KV.
func (a *Adapter) Close() error {
	return a.kv.Close()
}
