package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aptext/internal/dpkg"
	"github.com/blackwell-systems/aptext/internal/snapshots"
	"github.com/blackwell-systems/aptext/internal/store"
)

// openDatabase returns the package database under the configured root.
func openDatabase() *dpkg.StatusDB {
	return dpkg.NewStatusDB(filepath.Join(cfg.Root, cfg.AdminDir))
}

// openStore opens the backup history, creating the data directory and
// schema on first use.
func openStore() (*store.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open backup history: %w", err)
	}

	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create backup history schema: %w", err)
	}

	return st, nil
}

// snapshotOptions maps the configuration onto backup manager options.
func snapshotOptions() snapshots.Options {
	return snapshots.Options{
		Lister:       cfg.Lister,
		ListerColumn: cfg.ListerColumn,
		Installer:    cfg.Installer,
		SourcesList:  cfg.SourcesList,
		BackupDir:    cfg.BackupDir(),
	}
}

// newManager builds a backup manager. The backup history is opened only when
// withHistory is set, so stream and plain-file forms never touch the data
// directory. The returned close func is always safe to call.
func newManager(cmd *cobra.Command, withHistory bool) (*snapshots.Manager, func(), error) {
	if !withHistory {
		return snapshots.New(nil, newRunner(cmd), snapshotOptions()), func() {}, nil
	}

	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return snapshots.New(st, newRunner(cmd), snapshotOptions()), func() { st.Close() }, nil
}
