package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// timeLayout is fixed-width so created_at orders lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// InsertBackup records a backup written to path together with its package
// names and returns the new backup ID.
func (s *Store) InsertBackup(path, kernelRelease string, packages []string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO backups (created_at, path, package_count, kernel_release)
		VALUES (?, ?, ?, ?)
	`,
		time.Now().UTC().Format(timeLayout),
		path,
		len(packages),
		kernelRelease,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert backup: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get backup ID: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO backup_packages (backup_id, package_name) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare package insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range packages {
		if _, err := stmt.Exec(id, name); err != nil {
			return 0, fmt.Errorf("failed to insert backup package %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit backup: %w", err)
	}

	return id, nil
}

// GetBackup retrieves a backup by ID.
func (s *Store) GetBackup(id int64) (*Backup, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, path, package_count, kernel_release
		FROM backups
		WHERE id = ?
	`, id)

	b, err := scanBackup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("backup %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backup %d: %w", id, classify(err))
	}
	return b, nil
}

// LatestBackup returns the most recently created backup.
func (s *Store) LatestBackup() (*Backup, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, path, package_count, kernel_release
		FROM backups
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)

	b, err := scanBackup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest backup: %w", classify(err))
	}
	return b, nil
}

// ListBackups returns all backups ordered newest first.
func (s *Store) ListBackups() ([]*Backup, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, path, package_count, kernel_release
		FROM backups
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", classify(err))
	}
	defer rows.Close()

	var backups []*Backup
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backup row: %w", err)
		}
		backups = append(backups, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backups: %w", err)
	}

	return backups, nil
}

// GetBackupPackages returns the package names recorded for a backup, sorted.
func (s *Store) GetBackupPackages(id int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT package_name
		FROM backup_packages
		WHERE backup_id = ?
		ORDER BY package_name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get packages for backup %d: %w", id, classify(err))
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan backup package row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backup packages: %w", err)
	}

	return names, nil
}

// DeleteBackup removes a backup record and its packages.
func (s *Store) DeleteBackup(id int64) error {
	result, err := s.db.Exec(`DELETE FROM backups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete backup %d: %w", id, classify(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("backup %d: %w", id, ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBackup(row rowScanner) (*Backup, error) {
	var (
		b             Backup
		createdAt     string
		kernelRelease sql.NullString
	)

	if err := row.Scan(&b.ID, &createdAt, &b.Path, &b.PackageCount, &kernelRelease); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for backup %d: %w", b.ID, err)
	}
	b.CreatedAt = t
	b.KernelRelease = kernelRelease.String

	return &b, nil
}
