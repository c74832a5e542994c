package snapshots

import (
	"errors"

	"github.com/blackwell-systems/aptext/internal/dpkg"
	"github.com/blackwell-systems/aptext/internal/store"
)

// ErrEmptyList is returned when a restore source names no packages.
var ErrEmptyList = errors.New("package list is empty")

// StdStream selects standard input or output as a backup destination or
// restore source.
const StdStream = "-"

// Options configures the external commands and locations used by a Manager.
type Options struct {
	// Lister prints the explicitly selected packages, one per line.
	Lister []string
	// ListerColumn is the 1-based column of the lister output holding the name.
	ListerColumn int
	// Installer is invoked once with every restored name appended.
	Installer []string
	// SourcesList is copied next to directory backups.
	SourcesList string
	// BackupDir holds backups written without an explicit destination.
	BackupDir string
}

// Result describes a completed backup.
type Result struct {
	ID       int64 // zero when the backup was not recorded
	Path     string
	Packages []string
}

// Manager writes, records, resolves and replays selection-list backups.
type Manager struct {
	store  *store.Store
	runner dpkg.Runner
	opts   Options
}

// ErrNoHistory is returned when a recorded backup is requested from a Manager
// created without a store.
var ErrNoHistory = errors.New("backup history not available")

// New creates a new backup Manager. st may be nil when only stream and file
// destinations or sources are used.
func New(st *store.Store, runner dpkg.Runner, opts Options) *Manager {
	return &Manager{
		store:  st,
		runner: runner,
		opts:   opts,
	}
}
