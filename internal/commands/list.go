package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list --view <view>`.
type ListCmd struct {
	view string
}

func (c *ListCmd) Name() string          { return "list" }
func (c *ListCmd) Aliases() []string     { return []string{"ls"} }
func (c *ListCmd) Synopsis() string      { return "List tasks" }
func (c *ListCmd) Usage() string         { return "todo list [--view all|today|important|planned|assigned]" }
func (c *ListCmd) Requires() Requirement { return NeedsSession }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.view, "view", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	view, ok := service.ParseView(c.view)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown view: %s\n", c.view)
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Numbers are collection positions so they stay valid across views.
	pos := positions(svc)
	ts := svc.Tasks(view)
	entries := make([]output.Entry, len(ts))
	for i, t := range ts {
		entries[i] = output.Entry{Num: pos[t.ID], Task: t}
	}

	if len(entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatView(out, output.ViewTitle(view), entries)
	return exitcode.Success
}
