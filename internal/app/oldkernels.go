package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aptext/internal/dpkg"
)

var oldkernelsRelease string

var oldkernelsCmd = &cobra.Command{
	Use:   "oldkernels",
	Short: "List installed kernel packages not belonging to the running kernel",
	Long: `Print the short names of installed kernel packages (images, headers,
tools, backports and restricted modules) whose name does not carry the
running kernel's version, separated by spaces on a single line. Nothing is
printed when there are none.

Unversioned meta packages such as linux-image-generic are never listed.`,
	Example: `  apt-ext oldkernels
  sudo apt-get purge $(apt-ext oldkernels)
  apt-ext oldkernels --release 6.1.0-18-amd64`,
	Args: maxArgs(0),
	RunE: runOldKernels,
}

func init() {
	oldkernelsCmd.Flags().StringVar(&oldkernelsRelease, "release", "", "kernel release to keep (default: running kernel)")
}

func runOldKernels(cmd *cobra.Command, args []string) error {
	release := oldkernelsRelease
	if release == "" {
		r, err := kernelRelease()
		if err != nil {
			return fmt.Errorf("failed to determine kernel release: %w", err)
		}
		release = r
	}
	slog.Debug("classifying kernel packages", "release", release, "token", dpkg.VersionToken(release))

	names, err := dpkg.OldKernels(cmd.Context(), openDatabase(), release)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
	return nil
}
