package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"github.com/blackwell-systems/aptext/internal/dpkg"
)

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ExitCode reports err on w and returns the process exit status:
//
//   - an interrupted run prints an abort notice;
//   - usage errors print the one-line synopsis;
//   - a failed installer exits with the installer's status and no message;
//   - other failed commands (the selection lister) print the error, including
//     the captured stderr, and exit with the child's status;
//   - I/O errors print the OS error text and the offending path.
func ExitCode(ctx context.Context, err error, w io.Writer) int {
	if err == nil {
		return ExitOK
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "\nProgram stopped by user.")
		return ExitInterrupted
	}

	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(w, Usage)
		return ExitUsage
	}

	var installErr *dpkg.InstallError
	var exitErr *exec.ExitError
	if errors.As(err, &installErr) && errors.As(installErr.Err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
		return ExitFailure
	}

	if errors.As(err, &exitErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
		return ExitFailure
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		fmt.Fprintf(w, "%v: %s\n", pathErr.Err, pathErr.Path)
		return ExitFailure
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitFailure
}
