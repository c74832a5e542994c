package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates an in-memory store with the schema applied.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.CreateSchema())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.db)
}

func TestCreateSchema(t *testing.T) {
	s := newTestStore(t)

	for _, table := range []string{"backups", "backup_packages"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}

	for _, index := range []string{"idx_backups_created", "idx_backup_packages"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&name)
		assert.NoError(t, err, "index %s", index)
	}

	// Idempotent
	require.NoError(t, s.CreateSchema())
}

func TestListBackups_NoSchema_ReturnsErrNotInitialized(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.ListBackups()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInitialized), "got %v", err)
}

func TestInsertAndGetBackup(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertBackup("/backups/a.list", "5.4.0-100-generic", []string{"vim", "curl", "git"})
	require.NoError(t, err)
	assert.Positive(t, id)

	b, err := s.GetBackup(id)
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, "/backups/a.list", b.Path)
	assert.Equal(t, 3, b.PackageCount)
	assert.Equal(t, "5.4.0-100-generic", b.KernelRelease)
	assert.False(t, b.CreatedAt.IsZero())

	names, err := s.GetBackupPackages(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"curl", "git", "vim"}, names)
}

func TestInsertBackup_DuplicateNamesIgnored(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertBackup("/b.list", "", []string{"vim", "vim"})
	require.NoError(t, err)

	names, err := s.GetBackupPackages(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"vim"}, names)
}

func TestGetBackup_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBackup(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLatestBackup(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LatestBackup()
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.InsertBackup("/first.list", "", []string{"a"})
	require.NoError(t, err)
	second, err := s.InsertBackup("/second.list", "", []string{"a", "b"})
	require.NoError(t, err)

	latest, err := s.LatestBackup()
	require.NoError(t, err)
	assert.Equal(t, second, latest.ID)
	assert.Equal(t, "/second.list", latest.Path)
}

func TestListBackups_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	var ids []int64
	for _, path := range []string{"/1.list", "/2.list", "/3.list"} {
		id, err := s.InsertBackup(path, "", nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	backups, err := s.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, ids[2], backups[0].ID)
	assert.Equal(t, ids[0], backups[2].ID)
}

func TestDeleteBackup_CascadesPackages(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertBackup("/x.list", "", []string{"vim", "git"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBackup(id))

	_, err = s.GetBackup(id)
	require.ErrorIs(t, err, ErrNotFound)

	names, err := s.GetBackupPackages(id)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.ErrorIs(t, s.DeleteBackup(id), ErrNotFound)
}
