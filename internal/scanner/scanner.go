package scanner

import (
	"path/filepath"
	"strings"
)

// DefaultExclude lists the top-level paths skipped by a walk: volatile,
// virtual, removable and user-data trees that no package owns.
var DefaultExclude = []string{
	"/dev",
	"/home",
	"/host",
	"/media",
	"/mnt",
	"/opt",
	"/proc",
	"/root",
	"/run",
	"/sys",
	"/tmp",
	"/var",
}

// Scanner enumerates the paths of a filesystem tree as seen from inside root.
type Scanner struct {
	root    string
	exclude map[string]struct{}
}

// New creates a Scanner for root. Exclusions are top-level paths relative to
// root, written as absolute paths ("/var" skips <root>/var).
func New(root string, exclude []string) *Scanner {
	if root == "" {
		root = "/"
	}

	set := make(map[string]struct{}, len(exclude))
	for _, path := range exclude {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		set[filepath.Clean("/"+path)] = struct{}{}
	}

	return &Scanner{root: filepath.Clean(root), exclude: set}
}

// Root returns the directory the scanner walks.
func (s *Scanner) Root() string {
	return s.root
}

// Excluded reports whether the top-level path is skipped.
func (s *Scanner) Excluded(path string) bool {
	_, ok := s.exclude[filepath.Clean(path)]
	return ok
}
