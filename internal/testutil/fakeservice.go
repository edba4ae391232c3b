// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"todo/internal/service"
	"todo/internal/tasks"
)

// Credentials accepted by FakeService.
const (
	FakeEmail    = "demo@example.com"
	FakePassword = "demo123"
)

// FakeToday is the date FakeService treats as today.
const FakeToday = "2026-10-15"

// FakeUsers is the directory FakeService searches.
var FakeUsers = []service.User{
	{ID: "1", Name: "Demo User", Email: "demo@example.com"},
	{ID: "2", Name: "Alice Johnson", Email: "alice@example.com"},
	{ID: "3", Name: "Bob Smith", Email: "bob@example.com"},
}

var _ service.Service = (*FakeService)(nil)

// FakeService is an in-memory implementation of service.Service for testing.
// Tasks are kept in collection order, newest first.
type FakeService struct {
	mu      sync.RWMutex
	user    service.User
	active  bool
	stored  bool // session persisted across "restarts"
	tasks   []service.Task
	nextID  int
	Closed  bool
	Fetched []string // userIDs passed to FetchTasks

	// Error injection for testing
	AuthenticateErr error
	LogoutErr       error
	RestoreErr      error
	FetchTasksErr   error
	AddTaskErr      error
	UpdateTaskErr   error
	DeleteTaskErr   error
	SearchUsersErr  error
}

// NewFakeService creates a new FakeService with no session and no tasks.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// LogIn stores a session for the given user, as if a previous run had
// logged in.
func (f *FakeService) LogIn(u service.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user, f.active, f.stored = u, true, true
}

// Seed appends tasks to the collection in the given order.
func (f *FakeService) Seed(ts ...service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, ts...)
}

// Task returns the task with the given ID.
func (f *FakeService) Task(id string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Authenticate implements service.Service.
func (f *FakeService) Authenticate(ctx context.Context, email, password string) (service.User, error) {
	if f.AuthenticateErr != nil {
		return service.User{}, f.AuthenticateErr
	}
	if strings.ToLower(strings.TrimSpace(email)) != FakeEmail || password != FakePassword {
		return service.User{}, service.ErrInvalidCredentials
	}
	f.LogIn(FakeUsers[0])
	return FakeUsers[0], nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error {
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user, f.active, f.stored = service.User{}, false, false
	f.tasks = nil
	return nil
}

// RestoreSession implements service.Service.
func (f *FakeService) RestoreSession(ctx context.Context) (service.User, bool, error) {
	if f.RestoreErr != nil {
		return service.User{}, false, f.RestoreErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = f.stored
	return f.user, f.active, nil
}

// CurrentUser implements service.Service.
func (f *FakeService) CurrentUser() (service.User, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, f.active
}

// FetchTasks implements service.Service.
func (f *FakeService) FetchTasks(ctx context.Context, userID string) ([]service.Task, error) {
	if f.FetchTasksErr != nil {
		return nil, f.FetchTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Fetched = append(f.Fetched, userID)
	return append([]service.Task(nil), f.tasks...), nil
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	if f.AddTaskErr != nil {
		return service.Task{}, f.AddTaskErr
	}
	if strings.TrimSpace(draft.Title) == "" {
		return service.Task{}, fmt.Errorf("%w: title is required", service.ErrValidation)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	if draft.UserID == "" {
		draft.UserID = f.user.ID
	}
	if draft.Priority == "" {
		draft.Priority = service.PriorityMedium
	}
	task := draft.Task(fmt.Sprintf("task%d", f.nextID), fakeCreatedAt)
	task.Title = strings.TrimSpace(task.Title)
	f.tasks = append([]service.Task{task}, f.tasks...)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == task.ID {
			task.UserID, task.CreatedAt = t.UserID, t.CreatedAt
			if task.AssignedTo == "" {
				task.AssignedToUser = nil
			} else if u, ok := fakeUser(task.AssignedTo); ok {
				task.AssignedToUser = &u
			}
			f.tasks[i] = task
			return task, nil
		}
	}
	return service.Task{}, fmt.Errorf("task %s: %w", task.ID, service.ErrNotFound)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// SearchUsers implements service.Service.
func (f *FakeService) SearchUsers(ctx context.Context, query string) ([]service.User, error) {
	if f.SearchUsersErr != nil {
		return nil, f.SearchUsersErr
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []service.User
	for _, u := range FakeUsers {
		if q == "" || strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Tasks implements service.Service.
func (f *FakeService) Tasks(view service.View) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := []service.Task{}
	for _, t := range f.tasks {
		if tasks.Matches(t, view, FakeToday, f.user.ID) {
			out = append(out, t)
		}
	}
	return out
}

// Progress implements service.Service.
func (f *FakeService) Progress() float64 {
	return tasks.Progress(f.Tasks(service.ViewToday))
}

// Close implements service.Service.
func (f *FakeService) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

func fakeUser(id string) (service.User, bool) {
	for _, u := range FakeUsers {
		if u.ID == id {
			return u, true
		}
	}
	return service.User{}, false
}

var fakeCreatedAt = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
