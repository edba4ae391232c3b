package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"todo/internal/backend/local"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	// Common flags must precede positional arguments.
	full := append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	code = d.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpNeedsNoService(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--view"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -view\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NotLoggedIn(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: not logged in (run: todo login)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if !svc.Closed {
		t.Error("expected service to be closed")
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LogIn(testutil.FakeUsers[0])
	svc.Seed(service.Task{ID: "abc", Title: "Buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "   1  [ ] Buy milk") {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if len(svc.Fetched) != 1 || svc.Fetched[0] != "1" {
		t.Errorf("expected tasks fetched for user 1, got %v", svc.Fetched)
	}
}

func TestDispatcher_FetchErrorIsStorageError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LogIn(testutil.FakeUsers[0])
	svc.FetchTasksErr = errors.New("connection refused")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("unknown storage backend: etcd")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "users")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: unknown storage backend: etcd\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_LoginNeedsNoSession(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, _, code := run(t, dispatcher, "login", "demo@example.com", "demo123")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "logged in as Demo User\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if len(svc.Fetched) != 0 {
		t.Errorf("expected no fetch for login, got %v", svc.Fetched)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LogIn(testutil.FakeUsers[0])
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "list", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "session restored") || !strings.Contains(stderr, "command=list") {
		t.Errorf("expected debug output, got %q", stderr)
	}
}

// TestDispatcher_EndToEnd drives the real backend over in-memory storage.
func TestDispatcher_EndToEnd(t *testing.T) {
	kv := storage.NewMemory()
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return local.NewWithOptions(local.Options{KV: kv, Logger: cfg.Log()})
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	steps := []struct {
		args   []string
		code   int
		stdout string
	}{
		{[]string{"list"}, exitcode.AuthError, ""},
		{[]string{"login", "demo@example.com", "wrong"}, exitcode.AuthError, ""},
		{[]string{"login", "demo@example.com", "demo123"}, exitcode.Success, "logged in as Demo User\n"},
		{[]string{"list"}, exitcode.Success, "no tasks found\n"},
		{[]string{"add", "Call", "mom"}, exitcode.Success, "ok\n"},
		{[]string{"add", "--star", "Buy", "milk"}, exitcode.Success, "ok\n"},
		{[]string{"add", "   "}, exitcode.UserError, ""},
		{[]string{"add", "--priority", "urgent", "x"}, exitcode.UserError, ""},
		{[]string{"done", "2"}, exitcode.Success, "ok\n"},
		{[]string{"assign", "1", "bob"}, exitcode.Success, "assigned to Bob Smith\n"},
		{[]string{"list"}, exitcode.Success,
			"------------\nAll Tasks\n------------\n   1  [ ] Buy milk  (starred, @Bob Smith)\n" +
				"------------\nCompleted\n------------\n   2  [x] Call mom\n"},
		{[]string{"list", "--view", "important"}, exitcode.Success,
			"------------\nImportant\n------------\n   1  [ ] Buy milk  (starred, @Bob Smith)\n"},
		{[]string{"rm", "1"}, exitcode.Success, "ok\n"},
		{[]string{"rm", "1"}, exitcode.Success, "ok\n"},
		{[]string{"list"}, exitcode.Success, "no tasks found\n"},
		{[]string{"whoami"}, exitcode.Success, "Demo User <demo@example.com>\n"},
		{[]string{"logout"}, exitcode.Success, "ok\n"},
		{[]string{"list"}, exitcode.AuthError, ""},
	}

	for _, s := range steps {
		stdout, stderr, code := run(t, d, s.args...)
		if code != s.code {
			t.Fatalf("%v: expected exit code %d, got %d (stderr %q)", s.args, s.code, code, stderr)
		}
		if s.stdout != "" && stdout != s.stdout {
			t.Errorf("%v: expected %q, got %q", s.args, s.stdout, stdout)
		}
	}
}
