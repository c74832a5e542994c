// Package analyzer reconciles the paths found on disk with the paths the
// package database claims to own.
package analyzer

import (
	"os"
	"sort"
	"strings"
)

// Unmanaged returns the walked paths that no installed package owns, sorted.
func Unmanaged(walked, managed []string) []string {
	return difference(walked, managed)
}

// Missing returns the owned paths the walk did not find, sorted. Paths that
// exist as directories are dropped: an empty or excluded directory is absent
// from the walk without being missing. The directory filter applies to this
// side only.
func Missing(managed, walked []string, isDir func(string) bool) []string {
	if isDir == nil {
		isDir = IsDir
	}

	var out []string
	for _, path := range difference(managed, walked) {
		if isDir(path) {
			continue
		}
		out = append(out, path)
	}
	return out
}

// IsDir reports whether path exists and is a directory, following symlinks.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Format renders paths one per line, each newline-terminated. An empty list
// renders as the empty string.
func Format(paths []string) string {
	var sb strings.Builder
	for _, path := range paths {
		sb.WriteString(path)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// difference returns the distinct elements of a not present in b, sorted.
func difference(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, path := range b {
		exclude[path] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	var out []string
	for _, path := range a {
		if _, ok := exclude[path]; ok {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	sort.Strings(out)
	return out
}
