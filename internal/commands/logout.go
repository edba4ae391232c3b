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
	Register(&LogoutCmd{})
	Register(&WhoamiCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string          { return "logout" }
func (c *LogoutCmd) Aliases() []string     { return nil }
func (c *LogoutCmd) Synopsis() string      { return "End the session" }
func (c *LogoutCmd) Usage() string         { return "todo logout [common flags]" }
func (c *LogoutCmd) Requires() Requirement { return NeedsService }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	_, active, err := svc.RestoreSession(ctx)
	if err != nil {
		return Fail(errOut, err)
	}
	if !active {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := svc.Logout(ctx); err != nil {
		return Fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// WhoamiCmd prints the session user.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string          { return "whoami" }
func (c *WhoamiCmd) Aliases() []string     { return nil }
func (c *WhoamiCmd) Synopsis() string      { return "Show the logged in user" }
func (c *WhoamiCmd) Usage() string         { return "todo whoami [common flags]" }
func (c *WhoamiCmd) Requires() Requirement { return NeedsSession }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	user, ok := svc.CurrentUser()
	if !ok {
		return Fail(errOut, service.ErrNotLoggedIn)
	}
	fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
	return exitcode.Success
}
