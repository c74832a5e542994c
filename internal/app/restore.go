package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aptext/internal/snapshots"
)

var (
	restoreID     int64
	restoreDryRun bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore [source]",
	Short: "Reinstall packages from a saved list",
	Long: `Read a newline-separated package list and pass every name to the
installer (apt-get install by default) in a single invocation. Blank lines
and lines starting with '#' are ignored.

Sources:
  (none)      the most recent recorded backup
  --id N      recorded backup N (see 'apt-ext backups')
  -           standard input
  file        the named file

The installer's exit status becomes apt-ext's exit status.`,
	Example: `  sudo apt-ext restore
  sudo apt-ext restore /media/usb/packages.list
  apt-ext backup - | ssh newhost sudo apt-ext restore -
  apt-ext restore --id 3 --dry-run`,
	Args: maxArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().Int64Var(&restoreID, "id", 0, "restore a recorded backup by ID")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "print the installer command instead of running it")
}

func runRestore(cmd *cobra.Command, args []string) error {
	source := ""
	if len(args) == 1 {
		source = args[0]
	}
	if source != "" && restoreID > 0 {
		return fmt.Errorf("%w: --id and a source argument are mutually exclusive", ErrUsage)
	}

	mgr, closeStore, err := newManager(cmd, source == "" || restoreID > 0)
	if err != nil {
		return err
	}
	defer closeStore()

	names, err := mgr.Resolve(source, restoreID, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return snapshots.ErrEmptyList
	}

	if restoreDryRun {
		argv := append(append([]string{}, cfg.Installer...), names...)
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(argv, " "))
		return nil
	}

	return mgr.Restore(cmd.Context(), names)
}
