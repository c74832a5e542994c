package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Walk returns every file and directory path below the root's top-level
// entries, excluding the configured top-level paths. Paths are absolute as
// seen from inside root. Entries that cannot be read are skipped silently;
// only failure to list the root itself is reported.
//
// A top-level symlink to a directory (e.g. /bin -> usr/bin on merged-/usr
// systems) is followed, so its contents are reported under the link's name
// the way dpkg records them.
func (s *Scanner) Walk(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logicalTop := "/" + entry.Name()
		if s.Excluded(logicalTop) {
			slog.Debug("skipping excluded path", "path", logicalTop)
			continue
		}
		paths = append(paths, logicalTop)

		hostTop := filepath.Join(s.root, entry.Name())
		info, err := os.Stat(hostTop)
		if err != nil || !info.IsDir() {
			continue
		}

		slog.Debug("walking", "path", hostTop)
		found, err := walkTree(ctx, hostTop, logicalTop)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	slog.Debug("walk complete", "root", s.root, "paths", len(paths))
	return paths, nil
}

// walkTree walks hostTop and maps every path found onto logicalTop.
func walkTree(ctx context.Context, hostTop, logicalTop string) ([]string, error) {
	// The trailing separator makes WalkDir resolve a symlinked top directory.
	walkRoot := hostTop + string(filepath.Separator)

	var paths []string
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return nil
		}
		if path == walkRoot {
			return nil
		}
		paths = append(paths, logicalTop+filepath.ToSlash(path[len(hostTop):]))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", logicalTop, err)
	}

	return paths, nil
}
