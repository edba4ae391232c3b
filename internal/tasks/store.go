// Package tasks owns the in-memory task collection of the active session and
// writes every change through to storage.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"

	"todo/internal/service"
	"todo/internal/storage"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 9
)

// Store holds one user's collection at a time, most recent first.
// Every mutation persists the full collection before updating memory, so a
// failed write leaves the collection unchanged.
type Store struct {
	mu    sync.Mutex
	db    *storage.Adapter
	newID func() string
	now   func() time.Time

	owner string
	tasks []service.Task
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for createdAt and the today view.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides task ID generation.
func WithIDs(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty Store over db.
func New(db *storage.Adapter, opts ...Option) (*Store, error) {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.newID == nil {
		gen, err := nanoid.CustomASCII(idAlphabet, idLength)
		if err != nil {
			return nil, fmt.Errorf("init id generator: %w", err)
		}
		s.newID = gen
	}
	return s, nil
}

// Owner returns the user whose collection is loaded.
func (s *Store) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Fetch loads userID's collection, replacing whatever was in memory.
func (s *Store) Fetch(ctx context.Context, userID string) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fetchLocked(ctx, userID); err != nil {
		return nil, err
	}
	return cloneTasks(s.tasks), nil
}

func (s *Store) fetchLocked(ctx context.Context, userID string) error {
	loaded, err := s.db.LoadTasks(ctx, userID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	s.owner = userID
	s.tasks = loaded
	return nil
}

// Reset drops the loaded collection without touching storage.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = ""
	s.tasks = nil
}

// Add creates a task from draft and inserts it at the front of the owner's
// collection. A draft without a userID belongs to the loaded owner.
func (s *Store) Add(ctx context.Context, draft service.Draft) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.UserID == "" {
		draft.UserID = s.owner
	}
	task := draft.Task("", time.Time{})
	if err := normalize(&task); err != nil {
		return service.Task{}, err
	}
	if task.UserID == "" {
		return service.Task{}, fmt.Errorf("%w: userId is required", service.ErrValidation)
	}

	// Never mix partitions: switch to the draft owner's collection first.
	if task.UserID != s.owner {
		if err := s.fetchLocked(ctx, task.UserID); err != nil {
			return service.Task{}, err
		}
	}

	task.ID = s.uniqueIDLocked()
	task.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	next := make([]service.Task, 0, len(s.tasks)+1)
	next = append(next, task)
	next = append(next, s.tasks...)
	if err := s.commitLocked(ctx, next); err != nil {
		return service.Task{}, err
	}
	return cloneTask(task), nil
}

// Update replaces the task with the same ID. ID, owner and creation time
// always keep their stored values.
func (s *Store) Update(ctx context.Context, task service.Task) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(task.ID)
	if idx < 0 {
		return service.Task{}, fmt.Errorf("task %s: %w", task.ID, service.ErrNotFound)
	}

	task = cloneTask(task)
	if err := normalize(&task); err != nil {
		return service.Task{}, err
	}
	task.UserID = s.tasks[idx].UserID
	task.CreatedAt = s.tasks[idx].CreatedAt

	next := make([]service.Task, len(s.tasks))
	copy(next, s.tasks)
	next[idx] = task
	if err := s.commitLocked(ctx, next); err != nil {
		return service.Task{}, err
	}
	return cloneTask(task), nil
}

// Delete removes the task with the given ID. Unknown IDs are ignored.
// Removing the last task persists an empty collection.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}

	next := make([]service.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	return s.commitLocked(ctx, next)
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return service.Task{}, false
	}
	return cloneTask(s.tasks[idx]), true
}

// Tasks returns a copy of the loaded collection.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Filter returns the tasks in view, in collection order.
// currentUserID is only consulted by the assigned view.
func (s *Store) Filter(view service.View, currentUserID string) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.now().Format(service.DateLayout)

	out := []service.Task{}
	for _, t := range s.tasks {
		if Matches(t, view, today, currentUserID) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// Today returns the current calendar date in the store's clock.
func (s *Store) Today() string {
	return s.now().Format(service.DateLayout)
}

func (s *Store) commitLocked(ctx context.Context, next []service.Task) error {
	if err := s.db.SaveTasks(ctx, s.owner, next); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	s.tasks = next
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if s.indexLocked(id) < 0 {
			return id
		}
	}
}
