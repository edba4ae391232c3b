// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

// Requirement is what a command needs before it can run.
type Requirement int

const (
	// NeedsNothing commands run without touching storage (help, version).
	NeedsNothing Requirement = iota

	// NeedsService commands get a Service but no session (login, logout, users).
	NeedsService

	// NeedsSession commands get a Service with a restored session and the
	// session user's tasks already fetched.
	NeedsSession
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Requires reports what the dispatcher must set up before Run.
	Requires() Requirement

	// RegisterFlags registers command-specific flags.
	// It is called before every run and must reset flag state.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings, logger).
	// svc is nil if Requires() returns NeedsNothing.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
