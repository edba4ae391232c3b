package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&MarkCmd{name: "done", synopsis: "Mark a task completed",
		apply: func(t *service.Task) { t.Completed = true }})
	Register(&MarkCmd{name: "undone", synopsis: "Reopen a completed task",
		apply: func(t *service.Task) { t.Completed = false }})
	Register(&MarkCmd{name: "star", synopsis: "Mark a task important",
		apply: func(t *service.Task) { t.Starred = true }})
	Register(&MarkCmd{name: "unstar", synopsis: "Remove the important mark",
		apply: func(t *service.Task) { t.Starred = false }})
}

// MarkCmd sets a single flag on a task: done, undone, star or unstar.
type MarkCmd struct {
	name     string
	synopsis string
	apply    func(*service.Task)
}

// NewMarkCmd creates a MarkCmd (for testing).
func NewMarkCmd(name string, apply func(*service.Task)) *MarkCmd {
	return &MarkCmd{name: name, apply: apply}
}

func (c *MarkCmd) Name() string          { return c.name }
func (c *MarkCmd) Aliases() []string     { return nil }
func (c *MarkCmd) Synopsis() string      { return c.synopsis }
func (c *MarkCmd) Usage() string         { return "todo " + c.name + " <ref>" }
func (c *MarkCmd) Requires() Requirement { return NeedsSession }

func (c *MarkCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MarkCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := taskFromArgs(svc, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	c.apply(&task)
	if _, err := svc.UpdateTask(ctx, task); err != nil {
		return Fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
