package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aptext/internal/output"
)

var backupsPrune int

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List recorded backups",
	Long: `Show the backup history, newest first. With --prune N, keep the newest N
backups and forget the rest; files inside the backup directory are
deleted, lists written elsewhere are left in place.`,
	Example: `  apt-ext backups
  apt-ext backups --prune 5`,
	Args: maxArgs(0),
	RunE: runBackups,
}

func init() {
	backupsCmd.Flags().IntVar(&backupsPrune, "prune", -1, "keep only the newest N backups")
}

func runBackups(cmd *cobra.Command, args []string) error {
	mgr, closeStore, err := newManager(cmd, true)
	if err != nil {
		return err
	}
	defer closeStore()

	if cmd.Flags().Changed("prune") {
		removed, err := mgr.Prune(backupsPrune)
		if err != nil {
			return err
		}
		output.PrintSuccess("Pruned %d backup(s)", removed)
		return nil
	}

	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		output.PrintHint("No backups recorded yet. Run 'apt-ext backup' to create one.")
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderBackupTable(backups))
	return nil
}
