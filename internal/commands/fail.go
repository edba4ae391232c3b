package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// Fail prints err and returns the exit code for its kind.
func Fail(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrInvalidCredentials):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.StorageError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
}

