// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Repeat is a task recurrence rule.
type Repeat string

const (
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// ReminderLayout is the local date-time format used for reminders.
const ReminderLayout = "2006-01-02T15:04"

// User represents a directory entry.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Task represents a single task item.
// JSON field names are the persisted storage layout.
type Task struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Completed  bool      `json:"completed"`
	Priority   Priority  `json:"priority"`
	DueDate    string    `json:"dueDate,omitempty"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"createdAt"`
	UserID     string    `json:"userId"`
	AssignedTo string    `json:"assignedTo,omitempty"`

	// AssignedToUser is a display copy of the assignee and may be stale.
	AssignedToUser *User `json:"assignedToUser,omitempty"`

	Starred  bool     `json:"starred,omitempty"`
	Reminder string   `json:"reminder,omitempty"` // YYYY-MM-DDTHH:MM, local time
	Repeat   Repeat   `json:"repeat,omitempty"`
	Steps    []string `json:"steps,omitempty"`
}

// Draft is a task that has not been assigned an ID or creation time yet.
type Draft struct {
	Title          string
	Completed      bool
	Priority       Priority
	DueDate        string
	UserID         string
	AssignedTo     string
	AssignedToUser *User
	Starred        bool
	Reminder       string
	Repeat         Repeat
	Steps          []string
}

// Task builds the task a draft becomes once it has an ID and creation time.
func (d Draft) Task(id string, createdAt time.Time) Task {
	return Task{
		ID:             id,
		Title:          d.Title,
		Completed:      d.Completed,
		Priority:       d.Priority,
		DueDate:        d.DueDate,
		CreatedAt:      createdAt,
		UserID:         d.UserID,
		AssignedTo:     d.AssignedTo,
		AssignedToUser: d.AssignedToUser,
		Starred:        d.Starred,
		Reminder:       d.Reminder,
		Repeat:         d.Repeat,
		Steps:          d.Steps,
	}
}

// View selects a filtered projection of the task collection.
type View string

const (
	ViewAll       View = "all"
	ViewToday     View = "today"
	ViewImportant View = "important"
	ViewPlanned   View = "planned"
	ViewAssigned  View = "assigned"
)

// Views lists all views in display order.
var Views = []View{ViewAll, ViewToday, ViewImportant, ViewPlanned, ViewAssigned}

// ParseView parses a view name. An empty name is ViewAll.
func ParseView(s string) (View, bool) {
	if s == "" {
		return ViewAll, true
	}
	for _, v := range Views {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}
