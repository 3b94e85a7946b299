// Package history records one row per completed backup run in a local
// SQLite database, so past runs can be listed with `dirsnap history`.
package history

import "time"

// Run statuses.
const (
	StatusSuccess = "success" // run completed, no per-file failures
	StatusPartial = "partial" // run completed, some files failed verification or deletion
)

// Run is one recorded backup run.
type Run struct {
	ID              string
	SourceRoot      string
	BackupRoot      string
	Recursive       bool
	DeleteRequested bool
	UseDigest       bool
	PruneEmptyDirs  bool
	Copied          int64
	Deleted         int64
	Failed          int64
	Status          string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Store provides an interface for run-history persistence.
type Store interface {
	// Record inserts a completed run.
	Record(run *Run) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]*Run, error)

	// Close closes the underlying database.
	Close() error
}
