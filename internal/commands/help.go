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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string          { return "help" }
func (c *HelpCmd) Aliases() []string     { return nil }
func (c *HelpCmd) Synopsis() string      { return "Print usage" }
func (c *HelpCmd) Usage() string         { return "todo help" }
func (c *HelpCmd) Requires() Requirement { return NeedsNothing }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                   List all tasks
  todo list [--view <view>]              List tasks (all, today, important, planned, assigned)
  todo add [--due <YYYY-MM-DD>] [--priority low|medium|high] [--star]
           [--remind <YYYY-MM-DDTHH:MM>] [--repeat daily|weekly|monthly]
           [--step <text>]... <title...>
  todo edit [--title <t>] [--due <d>] [--priority <p>] [--remind <r>] [--repeat <r>] <ref>
  todo done <ref>
  todo undone <ref>
  todo star <ref>
  todo unstar <ref>
  todo rm <ref>
  todo assign <ref> <user...>
  todo unassign <ref>
  todo users [query...]
  todo progress
  todo login [--email <email>] [--password <password>]
  todo logout
  todo whoami
  todo help
  todo version

<ref> is the number shown by list, or a task id.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
