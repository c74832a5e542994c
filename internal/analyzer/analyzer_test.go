package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDirs(string) bool { return false }

func TestReconcile_EndToEnd(t *testing.T) {
	walked := []string{"/a", "/a/b", "/etc/x"}
	managed := []string{"/a/b", "/etc/y"}

	assert.Equal(t, []string{"/a", "/etc/x"}, Unmanaged(walked, managed))
	assert.Equal(t, []string{"/etc/y"}, Missing(managed, walked, noDirs))
}

func TestUnmanaged_DisjointFromManaged(t *testing.T) {
	cases := []struct {
		name    string
		walked  []string
		managed []string
	}{
		{"empty", nil, nil},
		{"all managed", []string{"/x", "/y"}, []string{"/y", "/x"}},
		{"none managed", []string{"/x", "/y"}, nil},
		{"overlap", []string{"/usr", "/usr/bin", "/usr/bin/ls", "/etc/foo"}, []string{"/usr", "/usr/bin/ls", "/nope"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Unmanaged(tc.walked, tc.managed)
			for _, path := range got {
				assert.NotContains(t, tc.managed, path)
			}
		})
	}
}

func TestUnmanaged_SortedAndDistinct(t *testing.T) {
	got := Unmanaged([]string{"/z", "/b", "/a", "/b"}, []string{"/q"})
	assert.Equal(t, []string{"/a", "/b", "/z"}, got)
}

func TestUnmanaged_NoDirectoryFilter(t *testing.T) {
	dir := t.TempDir()
	got := Unmanaged([]string{dir}, nil)
	assert.Equal(t, []string{dir}, got, "directories are reported as unmanaged")
}

func TestMissing_DropsExistingDirectories(t *testing.T) {
	dir := t.TempDir()
	emptyDir := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(emptyDir, 0755))
	gone := filepath.Join(dir, "gone.conf")

	got := Missing([]string{emptyDir, gone}, nil, IsDir)
	assert.Equal(t, []string{gone}, got)
	assert.NotContains(t, got, emptyDir)
}

func TestMissing_NilPredicateUsesFilesystem(t *testing.T) {
	dir := t.TempDir()
	got := Missing([]string{dir, "/definitely/not/here"}, nil, nil)
	assert.Equal(t, []string{"/definitely/not/here"}, got)
}

func TestReconcile_Idempotent(t *testing.T) {
	walked := []string{"/c", "/a", "/b"}
	managed := []string{"/b", "/d", "/e"}

	assert.Equal(t, Unmanaged(walked, managed), Unmanaged(walked, managed))
	assert.Equal(t, Missing(managed, walked, noDirs), Missing(managed, walked, noDirs))
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(dir, "missing")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "/a\n/etc/x\n", Format([]string{"/a", "/etc/x"}))
	assert.Equal(t, "", Format(nil))
}
