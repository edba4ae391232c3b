// Package users provides the static user directory used for assignment.
package users

import (
	"strings"

	"todo/internal/service"
)

var mockUsers = []service.User{
	{
		ID:     "1",
		Name:   "Demo User",
		Email:  "demo@example.com",
		Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&fit=crop&q=80",
	},
	{
		ID:     "2",
		Name:   "Alice Johnson",
		Email:  "alice@example.com",
		Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400&fit=crop&q=80",
	},
	{
		ID:     "3",
		Name:   "Bob Smith",
		Email:  "bob@example.com",
		Avatar: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400&fit=crop&q=80",
	},
}

// Directory is a read-only set of users.
type Directory struct {
	users []service.User
}

// New creates a directory over the given users, in order.
func New(users []service.User) *Directory {
	cp := make([]service.User, len(users))
	copy(cp, users)
	return &Directory{users: cp}
}

// Default returns the built-in mock directory.
func Default() *Directory {
	return New(mockUsers)
}

// All returns every user in directory order.
func (d *Directory) All() []service.User {
	out := make([]service.User, len(d.users))
	copy(out, d.users)
	return out
}

// Search returns users whose name or email contains query, ignoring case.
// A blank query returns all users.
func (d *Directory) Search(query string) []service.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.All()
	}
	var out []service.User
	for _, u := range d.users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

// Get looks up a user by ID.
func (d *Directory) Get(id string) (service.User, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return service.User{}, false
}
