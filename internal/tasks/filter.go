package tasks

import "todo/internal/service"

// Matches reports whether t belongs in view. today is the current date in
// YYYY-MM-DD form.
func Matches(t service.Task, view service.View, today, currentUserID string) bool {
	switch view {
	case service.ViewToday:
		return t.DueDate != "" && t.DueDate == today
	case service.ViewImportant:
		return t.Starred
	case service.ViewPlanned:
		return t.DueDate != ""
	case service.ViewAssigned:
		return currentUserID != "" && t.AssignedTo == currentUserID
	default:
		return true
	}
}

// Progress returns the percentage of completed tasks, 0 for none.
func Progress(ts []service.Task) float64 {
	if len(ts) == 0 {
		return 0
	}
	done := 0
	for _, t := range ts {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(ts)) * 100
}
