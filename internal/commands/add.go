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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due      string
	priority string
	star     bool
	remind   string
	repeat   string
	steps    stringList
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todo add [--due <date>] [--priority <p>] [--star] [--remind <time>] [--repeat <r>] [--step <text>]... <title...>"
}
func (c *AddCmd) Requires() Requirement { return NeedsSession }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.steps = nil
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.BoolVar(&c.star, "star", false, "")
	fs.StringVar(&c.remind, "remind", "", "")
	fs.StringVar(&c.repeat, "repeat", "", "")
	fs.Var(&c.steps, "step", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	user, ok := svc.CurrentUser()
	if !ok {
		return Fail(errOut, service.ErrNotLoggedIn)
	}

	task, err := svc.AddTask(ctx, service.Draft{
		Title:    title,
		UserID:   user.ID,
		Priority: service.Priority(c.priority),
		DueDate:  c.due,
		Starred:  c.star,
		Reminder: c.remind,
		Repeat:   service.Repeat(c.repeat),
		Steps:    c.steps,
	})
	if err != nil {
		return Fail(errOut, err)
	}
	cfg.Log().Debug("task added", "id", task.ID)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
