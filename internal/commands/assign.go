package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&AssignCmd{})
	Register(&UnassignCmd{})
}

// AssignCmd assigns a task to a user found by name or email.
type AssignCmd struct{}

func (c *AssignCmd) Name() string          { return "assign" }
func (c *AssignCmd) Aliases() []string     { return nil }
func (c *AssignCmd) Synopsis() string      { return "Assign a task to a user" }
func (c *AssignCmd) Usage() string         { return "todo assign <ref> <user...>" }
func (c *AssignCmd) Requires() Requirement { return NeedsSession }

func (c *AssignCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AssignCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := taskFromArgs(svc, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	query := strings.TrimSpace(strings.Join(args[1:], " "))
	if query == "" {
		fmt.Fprintln(errOut, "error: user required")
		return exitcode.UserError
	}

	user, err := findUser(ctx, svc, query)
	if err != nil {
		return Fail(errOut, err)
	}

	task.AssignedTo = user.ID
	task.AssignedToUser = &user
	if _, err := svc.UpdateTask(ctx, task); err != nil {
		return Fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "assigned to %s\n", user.Name)
	}
	return exitcode.Success
}

// findUser resolves query to exactly one user. When several users match, an
// exact name or email match wins.
func findUser(ctx context.Context, svc service.Service, query string) (service.User, error) {
	matches, err := svc.SearchUsers(ctx, query)
	if err != nil {
		return service.User{}, err
	}

	switch len(matches) {
	case 0:
		return service.User{}, fmt.Errorf("user %s: %w", query, service.ErrNotFound)
	case 1:
		return matches[0], nil
	}

	for _, u := range matches {
		if strings.EqualFold(u.Name, query) || strings.EqualFold(u.Email, query) {
			return u, nil
		}
	}
	names := make([]string, len(matches))
	for i, u := range matches {
		names[i] = u.Name
	}
	return service.User{}, fmt.Errorf("user %s: %w (matches: %s)", query, service.ErrAmbiguous, strings.Join(names, ", "))
}

// UnassignCmd clears a task's assignee.
type UnassignCmd struct{}

func (c *UnassignCmd) Name() string          { return "unassign" }
func (c *UnassignCmd) Aliases() []string     { return nil }
func (c *UnassignCmd) Synopsis() string      { return "Remove a task's assignee" }
func (c *UnassignCmd) Usage() string         { return "todo unassign <ref>" }
func (c *UnassignCmd) Requires() Requirement { return NeedsSession }

func (c *UnassignCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UnassignCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := taskFromArgs(svc, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task.AssignedTo = ""
	task.AssignedToUser = nil
	if _, err := svc.UpdateTask(ctx, task); err != nil {
		return Fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
