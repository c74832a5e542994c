package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aptext/internal/output"
	"github.com/blackwell-systems/aptext/internal/snapshots"
)

var backupCmd = &cobra.Command{
	Use:   "backup [dest]",
	Short: "Save the list of explicitly selected packages",
	Long: `Run the selection lister (apt-mark showmanual by default) and write the
package names, sorted and one per line.

Destinations:
  (none)      a timestamped file in <data-dir>/backups
  -           standard output (not recorded in the backup history)
  directory   <dir>/packages.list plus a copy of the apt sources list
  file        the named file

Backups written to a file are recorded in the backup history and can be
restored with 'apt-ext restore' or 'apt-ext restore --id N'.`,
	Example: `  apt-ext backup
  apt-ext backup -  > selections.txt
  apt-ext backup /media/usb`,
	Args: maxArgs(1),
	RunE: runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	dest := ""
	if len(args) == 1 {
		dest = args[0]
	}

	mgr, closeStore, err := newManager(cmd, dest != snapshots.StdStream)
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := mgr.Backup(cmd.Context(), dest, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if result.ID > 0 {
		output.PrintSuccess("Backed up %d packages to %s (backup %d)", len(result.Packages), result.Path, result.ID)
	}
	return nil
}
