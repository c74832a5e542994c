// Package output provides terminal output utilities for apt-ext.
//
// Results (paths, package names) are written by the commands themselves to
// stdout. Everything in this package targets stderr or renders tables for
// interactive listings:
//   - a spinner for the filesystem walk
//   - coloured status lines
//   - the backup history table
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// Stderr is where status lines are written. Tests may replace it.
var Stderr io.Writer = os.Stderr

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(format string, args ...any) {
	_, _ = successColor.Fprintf(Stderr, "✓ %s\n", fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message with a warning symbol.
func PrintWarning(format string, args ...any) {
	_, _ = warningColor.Fprintf(Stderr, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// PrintHint prints a dimmed follow-up hint.
func PrintHint(format string, args ...any) {
	_, _ = dimColor.Fprintf(Stderr, "  %s\n", fmt.Sprintf(format, args...))
}
