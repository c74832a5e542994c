package snapshots

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/blackwell-systems/aptext/internal/dpkg"
	"github.com/blackwell-systems/aptext/internal/output"
	"github.com/blackwell-systems/aptext/internal/store"
)

// Resolve returns the package names to restore:
//
//   - id > 0 selects a recorded backup;
//   - "" selects the most recent recorded backup;
//   - "-" reads the list from stdin;
//   - anything else is read as a list file.
func (m *Manager) Resolve(source string, id int64, stdin io.Reader) ([]string, error) {
	if (id > 0 || source == "") && m.store == nil {
		return nil, ErrNoHistory
	}

	switch {
	case id > 0:
		b, err := m.store.GetBackup(id)
		if err != nil {
			return nil, err
		}
		return m.recordedPackages(b)
	case source == "":
		b, err := m.store.LatestBackup()
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("no recorded backups; pass a list file or '-'")
		}
		if err != nil {
			return nil, err
		}
		return m.recordedPackages(b)
	case source == StdStream:
		return ReadList(stdin)
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadList(f)
	}
}

// recordedPackages reads a recorded backup's list file, falling back to the
// names stored with the record when the file is gone.
func (m *Manager) recordedPackages(b *store.Backup) ([]string, error) {
	f, err := os.Open(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		output.PrintWarning("Backup file %s is missing, using the package names recorded with backup %d", b.Path, b.ID)
		return m.store.GetBackupPackages(b.ID)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	slog.Debug("restoring from recorded backup", "id", b.ID, "path", b.Path)
	return ReadList(f)
}

// ReadList parses a newline-separated package list. Surrounding whitespace
// is trimmed; blank lines and lines starting with '#' are ignored.
func ReadList(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read package list: %w", err)
	}
	return names, nil
}

// Restore invokes the installer once with every name appended.
func (m *Manager) Restore(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return ErrEmptyList
	}
	slog.Debug("restoring packages", "count", len(names))
	return dpkg.Install(ctx, m.runner, m.opts.Installer, names)
}
