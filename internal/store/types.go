package store

import "time"

// Backup is a recorded selection-list backup.
type Backup struct {
	ID            int64
	CreatedAt     time.Time
	Path          string
	PackageCount  int
	KernelRelease string
}
