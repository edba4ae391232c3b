// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"todo/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// CompletedTitle heads the section of finished tasks.
	CompletedTitle = "Completed"
)

// Entry is a task together with the number it is referenced by.
type Entry struct {
	Num  int
	Task service.Task
}

// ViewTitle returns the display title of a view.
func ViewTitle(v service.View) string {
	switch v {
	case service.ViewToday:
		return "Today"
	case service.ViewImportant:
		return "Important"
	case service.ViewPlanned:
		return "Planned"
	case service.ViewAssigned:
		return "Assigned to me"
	default:
		return "All Tasks"
	}
}

// FormatHeader formats a section header.
func FormatHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// FormatView prints open entries under the title, followed by a Completed
// section when any entry is done. Entry order is preserved within each
// section.
func FormatView(w io.Writer, title string, entries []Entry) {
	FormatHeader(w, title)

	var done []Entry
	for _, e := range entries {
		if e.Task.Completed {
			done = append(done, e)
			continue
		}
		FormatTask(w, e.Num, e.Task)
	}

	if len(done) == 0 {
		return
	}
	FormatHeader(w, CompletedTitle)
	for _, e := range done {
		FormatTask(w, e.Num, e.Task)
	}
}

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TITLE}" followed by "  ({details})" when the task
// has any.
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := ' '
	if task.Completed {
		mark = 'x'
	}
	line := fmt.Sprintf("%4d  [%c] %s", num, mark, normalizeTitle(task.Title))
	if details := taskDetails(task); len(details) > 0 {
		line += "  (" + strings.Join(details, ", ") + ")"
	}
	fmt.Fprintln(w, line)
}

func taskDetails(t service.Task) []string {
	var d []string
	if t.Priority == service.PriorityHigh || t.Priority == service.PriorityLow {
		d = append(d, string(t.Priority)+" priority")
	}
	if t.Starred {
		d = append(d, "starred")
	}
	if t.DueDate != "" {
		d = append(d, "due "+t.DueDate)
	}
	if t.Reminder != "" {
		d = append(d, "remind "+strings.Replace(t.Reminder, "T", " ", 1))
	}
	if t.Repeat != "" {
		d = append(d, string(t.Repeat))
	}
	if t.AssignedTo != "" {
		name := t.AssignedTo
		if t.AssignedToUser != nil && t.AssignedToUser.Name != "" {
			name = t.AssignedToUser.Name
		}
		d = append(d, "@"+name)
	}
	switch n := len(t.Steps); n {
	case 0:
	case 1:
		d = append(d, "1 step")
	default:
		d = append(d, fmt.Sprintf("%d steps", n))
	}
	return d
}

// FormatUser formats a directory entry.
// Format: "{ID}  {NAME} <{EMAIL}>"
func FormatUser(w io.Writer, u service.User) {
	fmt.Fprintf(w, "%s  %s <%s>\n", u.ID, u.Name, u.Email)
}

// FormatProgress formats the completion summary of today's tasks.
func FormatProgress(w io.Writer, done, total int, percent float64) {
	fmt.Fprintf(w, "Today's progress: %d/%d (%d%%)\n", done, total, int(math.Round(percent)))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
