package dpkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
)

// Runner executes external commands. Tests substitute a fake.
type Runner interface {
	// Output runs the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command with the runner's standard streams attached.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	slog.Debug("running command", "cmd", name, "args", args)
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	slog.Debug("running command", "cmd", name, "args", args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Selections runs the lister command and extracts the 1-based column from
// every line of its output. The result is sorted with duplicates removed.
func Selections(ctx context.Context, runner Runner, lister []string, column int) ([]string, error) {
	if len(lister) == 0 {
		return nil, errors.New("no selection lister configured")
	}
	if column < 1 {
		return nil, fmt.Errorf("invalid lister column %d", column)
	}

	output, err := runner.Output(ctx, lister[0], lister[1:]...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s failed: %w (stderr: %s)", lister[0], err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s failed: %w", lister[0], err)
	}

	return extractColumn(string(output), column), nil
}

func extractColumn(output string, column int) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < column {
			continue
		}
		names = append(names, fields[column-1])
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// InstallError reports a failed installer run. The installer's own
// diagnostics have already reached the terminal through the runner's stderr.
type InstallError struct {
	Err error
}

func (e *InstallError) Error() string {
	return "installer failed: " + e.Err.Error()
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Install invokes the installer once with every name appended as an
// argument. A failed run is returned as *InstallError wrapping the runner's
// error, so callers can pass the installer's exit status through.
func Install(ctx context.Context, runner Runner, installer []string, names []string) error {
	if len(installer) == 0 {
		return errors.New("no installer command configured")
	}
	if len(names) == 0 {
		return errors.New("no packages to install")
	}

	args := make([]string, 0, len(installer)-1+len(names))
	args = append(args, installer[1:]...)
	args = append(args, names...)

	if err := runner.Run(ctx, installer[0], args...); err != nil {
		return &InstallError{Err: err}
	}
	return nil
}
