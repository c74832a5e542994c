package snapshots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/aptext/internal/dpkg"
	"github.com/blackwell-systems/aptext/internal/output"
)

// Backup lists the explicit selections and writes them to dest:
//
//   - "" writes a timestamped file into the backup directory;
//   - "-" writes to w and is not recorded;
//   - an existing directory receives packages.list and a copy of the
//     sources list;
//   - anything else is treated as the destination file.
//
// Every backup written to a file is recorded in the history store when the
// Manager has one.
func (m *Manager) Backup(ctx context.Context, dest string, w io.Writer) (*Result, error) {
	names, err := dpkg.Selections(ctx, m.runner, m.opts.Lister, m.opts.ListerColumn)
	if err != nil {
		return nil, fmt.Errorf("failed to list package selections: %w", err)
	}
	slog.Debug("collected selections", "count", len(names))

	content := formatList(names)

	if dest == StdStream {
		if _, err := io.WriteString(w, content); err != nil {
			return nil, fmt.Errorf("failed to write package list: %w", err)
		}
		return &Result{Path: StdStream, Packages: names}, nil
	}

	path, err := m.resolveDestination(dest)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if m.store == nil {
		return &Result{Path: path, Packages: names}, nil
	}

	release, err := dpkg.KernelRelease()
	if err != nil {
		slog.Warn("could not determine kernel release", "error", err)
	}

	id, err := m.store.InsertBackup(path, release, names)
	if err != nil {
		return nil, fmt.Errorf("failed to record backup: %w", err)
	}

	return &Result{ID: id, Path: path, Packages: names}, nil
}

// resolveDestination maps a backup destination argument onto the file to write.
func (m *Manager) resolveDestination(dest string) (string, error) {
	if dest == "" {
		if err := os.MkdirAll(m.opts.BackupDir, 0755); err != nil {
			return "", err
		}
		return uniquePath(m.opts.BackupDir, time.Now().Format("2006-01-02-150405"), ".list"), nil
	}

	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		return dest, nil
	}

	if err := m.copySourcesList(dest); err != nil {
		return "", err
	}
	return filepath.Join(dest, "packages.list"), nil
}

// copySourcesList copies the configured sources list into dir. A missing
// sources list is skipped with a warning.
func (m *Manager) copySourcesList(dir string) error {
	if m.opts.SourcesList == "" {
		return nil
	}

	src, err := os.Open(m.opts.SourcesList)
	if errors.Is(err, fs.ErrNotExist) {
		output.PrintWarning("Sources list %s not found, skipping copy", m.opts.SourcesList)
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filepath.Base(m.opts.SourcesList)))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", m.opts.SourcesList, err)
	}
	return dst.Close()
}

// uniquePath returns dir/base+ext, adding a numeric suffix when that file
// already exists.
func uniquePath(dir, base, ext string) string {
	path := filepath.Join(dir, base+ext)
	for i := 1; ; i++ {
		if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i, ext))
	}
}

func formatList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, "\n") + "\n"
}
