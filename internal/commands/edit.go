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
	Register(&EditCmd{})
}

// EditCmd changes fields of an existing task. Only flags that are given are
// applied; an empty value clears an optional field.
type EditCmd struct {
	title    optString
	due      optString
	priority optString
	remind   optString
	repeat   optString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "todo edit [--title <t>] [--due <date>] [--priority <p>] [--remind <time>] [--repeat <r>] <ref>"
}
func (c *EditCmd) Requires() Requirement { return NeedsSession }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.remind, "remind", "")
	fs.Var(&c.repeat, "repeat", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := taskFromArgs(svc, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !c.title.set && !c.due.set && !c.priority.set && !c.remind.set && !c.repeat.set {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}
	if c.title.set {
		task.Title = c.title.value
	}
	if c.due.set {
		task.DueDate = c.due.value
	}
	if c.priority.set {
		task.Priority = service.Priority(c.priority.value)
	}
	if c.remind.set {
		task.Reminder = c.remind.value
	}
	if c.repeat.set {
		task.Repeat = service.Repeat(c.repeat.value)
	}

	if _, err := svc.UpdateTask(ctx, task); err != nil {
		return Fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
