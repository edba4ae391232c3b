// Package local implements service.Service on top of key-value storage, with
// simulated latency standing in for a remote API.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"todo/internal/async"
	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/session"
	"todo/internal/storage"
	"todo/internal/tasks"
	"todo/internal/users"
)

// Options wires a Client. Only KV is required.
type Options struct {
	KV      storage.KV
	Latency async.Latency
	Session session.Config
	Users   *users.Directory
	Logger  *slog.Logger

	// Now and IDs override the task clock and ID generator, for tests.
	Now func() time.Time
	IDs func() string
}

// Client implements service.Service. It owns the session, the loaded task
// collection and the user directory.
type Client struct {
	db       *storage.Adapter
	sessions *session.Manager
	store    *tasks.Store
	dir      *users.Directory
	latency  async.Latency
	log      *slog.Logger
}

var _ service.Service = (*Client)(nil)

// New opens the storage backend named in cfg and creates a client over it.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	s := cfg.Settings
	if s.Storage == "" || s.Storage == storage.BackendSQLite {
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	kv, err := storage.Open(ctx, storage.Options{
		Backend:     s.Storage,
		SQLitePath:  cfg.DBPath(),
		RedisAddr:   s.RedisAddr,
		RedisPrefix: s.RedisPrefix,
	})
	if err != nil {
		return nil, err
	}

	latency := async.NoLatency
	if cfg.LatencyEnabled() {
		latency = async.DefaultLatency
	}

	c, err := NewWithOptions(Options{
		KV:      kv,
		Latency: latency,
		Session: session.Config{Secret: s.SessionSecret, TTL: s.SessionTTL},
		Logger:  cfg.Log(),
	})
	if err != nil {
		kv.Close()
		return nil, err
	}
	return c, nil
}

// NewWithOptions creates a client from explicit parts.
func NewWithOptions(opts Options) (*Client, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	dir := opts.Users
	if dir == nil {
		dir = users.Default()
	}

	db := storage.NewAdapter(opts.KV, log)

	var storeOpts []tasks.Option
	if opts.Now != nil {
		storeOpts = append(storeOpts, tasks.WithClock(opts.Now))
	}
	if opts.IDs != nil {
		storeOpts = append(storeOpts, tasks.WithIDs(opts.IDs))
	}
	store, err := tasks.New(db, storeOpts...)
	if err != nil {
		return nil, err
	}

	sessCfg := opts.Session
	if sessCfg.Now == nil {
		sessCfg.Now = opts.Now
	}

	return &Client{
		db:       db,
		sessions: session.New(db, dir, sessCfg, log),
		store:    store,
		dir:      dir,
		latency:  opts.Latency,
		log:      log,
	}, nil
}

// later runs fn after delay. Once fn starts it runs to completion even if
// ctx is cancelled; cancellation only abandons the wait.
func later[T any](ctx context.Context, delay time.Duration, fn func(context.Context) (T, error)) *async.Future[T] {
	run := context.WithoutCancel(ctx)
	return async.Go(ctx, delay, func() (T, error) { return fn(run) })
}

// AuthenticateAsync starts a login.
func (c *Client) AuthenticateAsync(ctx context.Context, email, password string) *async.Future[service.User] {
	return later(ctx, c.latency.Login, func(ctx context.Context) (service.User, error) {
		return c.sessions.Authenticate(ctx, email, password)
	})
}

// Authenticate validates the credential pair and starts a persisted session.
func (c *Client) Authenticate(ctx context.Context, email, password string) (service.User, error) {
	return c.AuthenticateAsync(ctx, email, password).Await(ctx)
}

// Logout ends the session and drops the loaded collection.
func (c *Client) Logout(ctx context.Context) error {
	c.store.Reset()
	return c.sessions.Logout(ctx)
}

// RestoreSession picks up a session persisted by an earlier run.
func (c *Client) RestoreSession(ctx context.Context) (service.User, bool, error) {
	return c.sessions.Restore(ctx)
}

// CurrentUser returns the session user, if any.
func (c *Client) CurrentUser() (service.User, bool) {
	return c.sessions.Current()
}

func (c *Client) requireSession() error {
	if _, ok := c.sessions.Current(); !ok {
		return service.ErrNotLoggedIn
	}
	return nil
}

// FetchTasksAsync starts loading a user's collection.
func (c *Client) FetchTasksAsync(ctx context.Context, userID string) *async.Future[[]service.Task] {
	if err := c.requireSession(); err != nil {
		return async.Resolved[[]service.Task](nil, err)
	}
	return later(ctx, c.latency.Fetch, func(ctx context.Context) ([]service.Task, error) {
		ts, err := c.store.Fetch(ctx, userID)
		if err != nil {
			return nil, err
		}
		return c.resolveAll(ts), nil
	})
}

// FetchTasks loads the user's collection and replaces local state with it.
func (c *Client) FetchTasks(ctx context.Context, userID string) ([]service.Task, error) {
	return c.FetchTasksAsync(ctx, userID).Await(ctx)
}

// AddTaskAsync starts creating a task.
func (c *Client) AddTaskAsync(ctx context.Context, draft service.Draft) *async.Future[service.Task] {
	if err := c.requireSession(); err != nil {
		return async.Resolved(service.Task{}, err)
	}
	return later(ctx, c.latency.Mutate, func(ctx context.Context) (service.Task, error) {
		if draft.AssignedTo != "" {
			u, ok := c.dir.Get(draft.AssignedTo)
			if !ok {
				return service.Task{}, fmt.Errorf("user %s: %w", draft.AssignedTo, service.ErrNotFound)
			}
			draft.AssignedToUser = &u
		}
		return c.store.Add(ctx, draft)
	})
}

// AddTask creates a task from a draft and inserts it at the front.
func (c *Client) AddTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	return c.AddTaskAsync(ctx, draft).Await(ctx)
}

// UpdateTaskAsync starts replacing a task.
func (c *Client) UpdateTaskAsync(ctx context.Context, task service.Task) *async.Future[service.Task] {
	if err := c.requireSession(); err != nil {
		return async.Resolved(service.Task{}, err)
	}
	return later(ctx, c.latency.Mutate, func(ctx context.Context) (service.Task, error) {
		if err := c.snapshotAssignee(&task); err != nil {
			return service.Task{}, err
		}
		return c.store.Update(ctx, task)
	})
}

// UpdateTask replaces an existing task by ID.
func (c *Client) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	return c.UpdateTaskAsync(ctx, task).Await(ctx)
}

// DeleteTaskAsync starts removing a task.
func (c *Client) DeleteTaskAsync(ctx context.Context, id string) *async.Future[struct{}] {
	if err := c.requireSession(); err != nil {
		return async.Resolved(struct{}{}, err)
	}
	return later(ctx, c.latency.Mutate, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.store.Delete(ctx, id)
	})
}

// DeleteTask removes a task by ID. Unknown IDs are not an error.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.DeleteTaskAsync(ctx, id).Await(ctx)
	return err
}

// SearchUsersAsync starts a directory search.
func (c *Client) SearchUsersAsync(ctx context.Context, query string) *async.Future[[]service.User] {
	return later(ctx, c.latency.Users, func(context.Context) ([]service.User, error) {
		return c.dir.Search(query), nil
	})
}

// SearchUsers matches users by name or email.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]service.User, error) {
	return c.SearchUsersAsync(ctx, query).Await(ctx)
}

// Tasks returns the loaded collection filtered by view.
func (c *Client) Tasks(view service.View) []service.Task {
	u, _ := c.sessions.Current()
	return c.resolveAll(c.store.Filter(view, u.ID))
}

// Progress returns the completion percentage of tasks due today.
func (c *Client) Progress() float64 {
	return tasks.Progress(c.Tasks(service.ViewToday))
}

// Close releases the storage backend.
func (c *Client) Close() error {
	return c.db.Close()
}

// snapshotAssignee refreshes the assignee copy on task. A new assignee must
// exist in the directory; an unchanged unknown one keeps its stored copy.
func (c *Client) snapshotAssignee(task *service.Task) error {
	if task.AssignedTo == "" {
		task.AssignedToUser = nil
		return nil
	}
	if u, ok := c.dir.Get(task.AssignedTo); ok {
		task.AssignedToUser = &u
		return nil
	}
	if prev, ok := c.store.Get(task.ID); ok && prev.AssignedTo == task.AssignedTo {
		task.AssignedToUser = prev.AssignedToUser
		return nil
	}
	return fmt.Errorf("user %s: %w", task.AssignedTo, service.ErrNotFound)
}

// resolveAll replaces stored assignee copies with current directory entries.
func (c *Client) resolveAll(ts []service.Task) []service.Task {
	for i := range ts {
		if ts[i].AssignedTo == "" {
			continue
		}
		if u, ok := c.dir.Get(ts[i].AssignedTo); ok {
			ts[i].AssignedToUser = &u
		}
	}
	return ts
}
