// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned when the email/password pair is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned when a task fails validation. It is always
	// wrapped with the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a task or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a lookup matches more than one entry.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrNotLoggedIn is returned by operations that need an active session.
	ErrNotLoggedIn = errors.New("not logged in")
)

// Service defines the operations exposed to the presentation layer.
// The CLI commands never touch storage directly; everything goes through here.
type Service interface {
	// Authenticate validates the credential pair and starts a persisted session.
	Authenticate(ctx context.Context, email, password string) (User, error)

	// Logout ends the session and clears its persisted record.
	Logout(ctx context.Context) error

	// RestoreSession loads a persisted session, if any.
	// The boolean reports whether a session is active.
	RestoreSession(ctx context.Context) (User, bool, error)

	// CurrentUser returns the session user, if a session is active.
	CurrentUser() (User, bool)

	// FetchTasks loads the user's collection and replaces local state with it.
	FetchTasks(ctx context.Context, userID string) ([]Task, error)

	// AddTask creates a task from a draft and inserts it at the front.
	AddTask(ctx context.Context, draft Draft) (Task, error)

	// UpdateTask replaces an existing task by ID.
	UpdateTask(ctx context.Context, task Task) (Task, error)

	// DeleteTask removes a task by ID. Unknown IDs are not an error.
	DeleteTask(ctx context.Context, id string) error

	// SearchUsers matches users by name or email (case-insensitive).
	// An empty query returns all users.
	SearchUsers(ctx context.Context, query string) ([]User, error)

	// Tasks returns the loaded collection filtered by view, in collection order.
	Tasks(view View) []Task

	// Progress returns the completion percentage of today's tasks.
	Progress() float64

	// Close releases the underlying storage.
	Close() error
}
