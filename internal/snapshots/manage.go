package snapshots

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/aptext/internal/store"
)

// List returns all recorded backups, newest first.
func (m *Manager) List() ([]*store.Backup, error) {
	backups, err := m.store.ListBackups()
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	return backups, nil
}

// Prune keeps the newest keep backups and forgets the rest. Files are only
// deleted when they live in the backup directory; lists written to
// user-chosen destinations are left in place. Returns the number of records
// removed.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("invalid keep count %d", keep)
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if m.ownsFile(b.Path) {
			if err := os.Remove(b.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return removed, err
			}
		}
		if err := m.store.DeleteBackup(b.ID); err != nil {
			return removed, fmt.Errorf("failed to delete backup %d: %w", b.ID, err)
		}
		removed++
	}

	return removed, nil
}

func (m *Manager) ownsFile(path string) bool {
	if m.opts.BackupDir == "" {
		return false
	}
	dir, err := filepath.Abs(m.opts.BackupDir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	return err == nil && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}
