package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"todo/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ResolveTaskRef finds the task named by ref in the loaded collection.
// ref is a task ID or the 1-based position printed by list. An exact ID
// match wins over a position.
func ResolveTaskRef(svc service.Service, ref string) (service.Task, error) {
	if ref == "" {
		return service.Task{}, ErrTaskRefRequired
	}

	all := svc.Tasks(service.ViewAll)
	for _, t := range all {
		if t.ID == ref {
			return t, nil
		}
	}

	if !isAllDigits(ref) {
		return service.Task{}, fmt.Errorf("task not found: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil || num < 1 || num > len(all) {
		return service.Task{}, fmt.Errorf("task number out of range: %s", ref)
	}
	return all[num-1], nil
}

// taskFromArgs resolves the first positional argument as a task reference.
func taskFromArgs(svc service.Service, args []string) (service.Task, error) {
	if len(args) == 0 {
		return service.Task{}, ErrTaskRefRequired
	}
	return ResolveTaskRef(svc, args[0])
}

// positions maps task IDs to their 1-based position in the collection.
func positions(svc service.Service) map[string]int {
	all := svc.Tasks(service.ViewAll)
	pos := make(map[string]int, len(all))
	for i, t := range all {
		pos[t.ID] = i + 1
	}
	return pos
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
