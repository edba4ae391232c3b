package commands

import (
	"errors"
	"testing"

	"todo/internal/service"
	"todo/internal/testutil"
)

func refService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.LogIn(testutil.FakeUsers[0])
	svc.Seed(
		service.Task{ID: "k3j9x0abc", Title: "first"},
		service.Task{ID: "123456789", Title: "numeric id"},
		service.Task{ID: "p0q1r2s3t", Title: "third"},
	)
	return svc
}

func TestResolveTaskRef_Position(t *testing.T) {
	task, err := ResolveTaskRef(refService(), "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "third" {
		t.Errorf("expected third, got %q", task.Title)
	}
}

func TestResolveTaskRef_ID(t *testing.T) {
	task, err := ResolveTaskRef(refService(), "k3j9x0abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "first" {
		t.Errorf("expected first, got %q", task.Title)
	}
}

func TestResolveTaskRef_NumericIDBeatsPosition(t *testing.T) {
	task, err := ResolveTaskRef(refService(), "123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "numeric id" {
		t.Errorf("expected numeric id, got %q", task.Title)
	}
}

func TestResolveTaskRef_Errors(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"4", "task number out of range: 4"},
		{"0", "task number out of range: 0"},
		{"99999999999999999999", "task number out of range: 99999999999999999999"},
		{"nope", "task not found: nope"},
		{"-1", "task not found: -1"},
		{"１", "task not found: １"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, err := ResolveTaskRef(refService(), tt.ref)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestResolveTaskRef_Required(t *testing.T) {
	if _, err := ResolveTaskRef(refService(), ""); !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
	if _, err := taskFromArgs(refService(), nil); !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestPositions(t *testing.T) {
	pos := positions(refService())
	if pos["k3j9x0abc"] != 1 || pos["p0q1r2s3t"] != 3 {
		t.Errorf("unexpected positions %v", pos)
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"", false},
		{"0", true},
		{"123", true},
		{"12a", false},
		{"٣", false},
	}
	for _, tt := range tests {
		if got := isAllDigits(tt.s); got != tt.want {
			t.Errorf("isAllDigits(%q): expected %v, got %v", tt.s, tt.want, got)
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&RmCmd{}); err == nil {
		t.Error("expected duplicate name error")
	}
	if cmd, ok := r.Find("delete"); !ok || cmd.Name() != "rm" {
		t.Error("expected alias lookup to find rm")
	}
}
