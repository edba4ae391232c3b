package tasks

import (
	"fmt"
	"strings"
	"time"

	"todo/internal/service"
)

// normalize trims and defaults a task's fields in place and rejects values
// that cannot be stored.
func normalize(t *service.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", service.ErrValidation)
	}

	switch t.Priority {
	case "":
		t.Priority = service.PriorityMedium
	case service.PriorityLow, service.PriorityMedium, service.PriorityHigh:
	default:
		return fmt.Errorf("%w: invalid priority: %s", service.ErrValidation, t.Priority)
	}

	switch t.Repeat {
	case "", service.RepeatDaily, service.RepeatWeekly, service.RepeatMonthly:
	default:
		return fmt.Errorf("%w: invalid repeat: %s", service.ErrValidation, t.Repeat)
	}

	t.DueDate = strings.TrimSpace(t.DueDate)
	if t.DueDate != "" {
		if _, err := time.Parse(service.DateLayout, t.DueDate); err != nil {
			return fmt.Errorf("%w: invalid due date: %s", service.ErrValidation, t.DueDate)
		}
	}

	t.Reminder = strings.TrimSpace(t.Reminder)
	if t.Reminder != "" {
		if _, err := time.Parse(service.ReminderLayout, t.Reminder); err != nil {
			return fmt.Errorf("%w: invalid reminder: %s", service.ErrValidation, t.Reminder)
		}
	}

	if len(t.Steps) > 0 {
		steps := make([]string, 0, len(t.Steps))
		for _, s := range t.Steps {
			if s = strings.TrimSpace(s); s != "" {
				steps = append(steps, s)
			}
		}
		if len(steps) == 0 {
			steps = nil
		}
		t.Steps = steps
	}

	if t.AssignedTo == "" {
		t.AssignedToUser = nil
	}
	return nil
}

func cloneTask(t service.Task) service.Task {
	if t.Steps != nil {
		t.Steps = append([]string(nil), t.Steps...)
	}
	if t.AssignedToUser != nil {
		u := *t.AssignedToUser
		t.AssignedToUser = &u
	}
	return t
}

func cloneTasks(ts []service.Task) []service.Task {
	out := make([]service.Task, len(ts))
	for i, t := range ts {
		out[i] = cloneTask(t)
	}
	return out
}
