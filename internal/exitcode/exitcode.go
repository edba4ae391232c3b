// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid task, not found, ambiguous).
	UserError = 1

	// AuthError indicates a rejected login or a command run without a session.
	AuthError = 2

	// StorageError indicates the storage backend failed or timed out.
	StorageError = 3
)
