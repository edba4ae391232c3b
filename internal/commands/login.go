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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string          { return "login" }
func (c *LoginCmd) Aliases() []string     { return nil }
func (c *LoginCmd) Synopsis() string      { return "Start a session" }
func (c *LoginCmd) Usage() string         { return "todo login [--email <email>] [--password <password>] [<email> <password>]" }
func (c *LoginCmd) Requires() Requirement { return NeedsService }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	email, password := c.email, c.password
	if len(args) > 2 {
		fmt.Fprintln(errOut, "error: too many arguments")
		return exitcode.UserError
	}
	if len(args) > 0 && email == "" {
		email = args[0]
	}
	if len(args) > 1 && password == "" {
		password = args[1]
	}
	if email == "" || password == "" {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}

	user, err := svc.Authenticate(ctx, email, password)
	if err != nil {
		return Fail(errOut, err)
	}
	cfg.Log().Debug("authenticated", "user", user.ID)

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.Name)
	}
	return exitcode.Success
}
