package dpkg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultAdminDir is the location of the dpkg database on Debian-family systems.
const DefaultAdminDir = "/var/lib/dpkg"

// Database is the package database collaborator consumed by the maintenance verbs.
type Database interface {
	// Packages returns every package known to the database, installed or not.
	Packages(ctx context.Context) ([]*Package, error)
	// Files returns the absolute paths recorded as installed by pkg.
	Files(ctx context.Context, pkg *Package) ([]string, error)
}

// StatusDB reads the dpkg status file and the per-package file lists under
// an admin directory.
type StatusDB struct {
	adminDir string
}

var _ Database = (*StatusDB)(nil)

// NewStatusDB creates a StatusDB rooted at adminDir. An empty adminDir
// selects DefaultAdminDir.
func NewStatusDB(adminDir string) *StatusDB {
	if adminDir == "" {
		adminDir = DefaultAdminDir
	}
	return &StatusDB{adminDir: adminDir}
}

// Packages parses <admin>/status.
func (db *StatusDB) Packages(ctx context.Context) ([]*Package, error) {
	f, err := os.Open(filepath.Join(db.adminDir, "status"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pkgs, err := parseStatus(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dpkg status file: %w", err)
	}
	return pkgs, nil
}

// Files reads <admin>/info/<name>.list, falling back to the multi-arch
// <name>:<arch>.list. A package without a list file owns no files.
func (db *StatusDB) Files(ctx context.Context, pkg *Package) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := []string{pkg.ShortName() + ".list"}
	if pkg.Architecture != "" {
		candidates = append(candidates, pkg.ShortName()+":"+pkg.Architecture+".list")
	}

	for _, name := range candidates {
		files, err := readFileList(filepath.Join(db.adminDir, "info", name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return files, nil
	}
	return nil, nil
}

func readFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// dpkg records the root of every package as "/."
		if line == "" || line == "/." {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &fs.PathError{Op: "read", Path: path, Err: err}
	}
	return files, nil
}

// parseStatus reads deb822 paragraphs and keeps the fields the verbs need.
// Continuation lines (leading space or tab) belong to multi-line fields such
// as Description and are ignored.
func parseStatus(ctx context.Context, r io.Reader) ([]*Package, error) {
	var (
		pkgs []*Package
		cur  *Package
	)

	flush := func() {
		if cur != nil && cur.Name != "" {
			cur.Installed = isInstalledStatus(cur.Status)
			pkgs = append(pkgs, cur)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed line %q", line)
		}
		if cur == nil {
			cur = &Package{}
		}

		value = strings.TrimSpace(value)
		switch key {
		case "Package":
			cur.Name = value
		case "Status":
			cur.Status = value
		case "Architecture":
			cur.Architecture = value
		case "Version":
			cur.Version = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return pkgs, nil
}

// isInstalledStatus reports whether the package state, the third word of a
// Status field ("want flag status"), leaves files on disk. Every state except
// not-installed and config-files counts, including the transient ones seen
// during an interrupted upgrade (unpacked, half-configured, triggers-pending).
func isInstalledStatus(status string) bool {
	fields := strings.Fields(status)
	if len(fields) != 3 {
		return false
	}
	switch fields[2] {
	case "not-installed", "config-files":
		return false
	}
	return true
}

// ManagedFiles returns the concatenated owned-file lists of every installed
// package in db.
func ManagedFiles(ctx context.Context, db Database) ([]string, error) {
	pkgs, err := db.Packages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	var files []string
	for _, pkg := range Filter(pkgs, func(p *Package) bool { return p.Installed }) {
		owned, err := db.Files(ctx, pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to read file list for %s: %w", pkg.Name, err)
		}
		files = append(files, owned...)
	}

	return files, nil
}
