package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&UsersCmd{})
	Register(&ProgressCmd{})
}

// UsersCmd searches the user directory.
type UsersCmd struct{}

func (c *UsersCmd) Name() string          { return "users" }
func (c *UsersCmd) Aliases() []string     { return nil }
func (c *UsersCmd) Synopsis() string      { return "Search users by name or email" }
func (c *UsersCmd) Usage() string         { return "todo users [query...]" }
func (c *UsersCmd) Requires() Requirement { return NeedsService }

func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UsersCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	found, err := svc.SearchUsers(ctx, strings.Join(args, " "))
	if err != nil {
		return Fail(errOut, err)
	}
	if len(found) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no users found")
		}
		return exitcode.Success
	}
	for _, u := range found {
		output.FormatUser(out, u)
	}
	return exitcode.Success
}

// ProgressCmd prints how many of today's tasks are done.
type ProgressCmd struct{}

func (c *ProgressCmd) Name() string          { return "progress" }
func (c *ProgressCmd) Aliases() []string     { return nil }
func (c *ProgressCmd) Synopsis() string      { return "Show today's progress" }
func (c *ProgressCmd) Usage() string         { return "todo progress" }
func (c *ProgressCmd) Requires() Requirement { return NeedsSession }

func (c *ProgressCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProgressCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	today := svc.Tasks(service.ViewToday)
	done := 0
	for _, t := range today {
		if t.Completed {
			done++
		}
	}
	output.FormatProgress(out, done, len(today), svc.Progress())
	return exitcode.Success
}
