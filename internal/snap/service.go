package snap

import (
	"fmt"
	"path/filepath"
)

// Options is the resolved configuration for one backup run, supplied by the
// CLI layer.
type Options struct {
	// SourceRoot is the directory being backed up.
	SourceRoot string
	// BaseName is the backup directory name prefix.
	BaseName string
	// ExcludeNames are additional bare names never copied or deleted,
	// typically the running executable's own filename.
	ExcludeNames []string

	Recursive      bool
	Delete         bool
	PruneEmptyDirs bool
	UseDigest      bool
	Force          bool
}

const confirmPrompt = "Are you sure you want to DELETE the original files that were backed up? THIS CANNOT BE UNDONE."

// Service sequences the backup pipeline: allocate, copy, and optionally
// verify and delete, aggregating the results into a Summary.
type Service struct {
	ui     UI
	logger Logger
	clock  Clock
	idgen  IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(ui UI, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		ui:     ui,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
	}
}

// Run executes one backup run and returns its Summary. The Summary is also
// handed to the UI before returning, including on the nothing-to-do path.
//
// Fatal conditions (allocation failure, copy I/O failure) return an error
// and no Summary; per-file verification and deletion failures are collected
// into the Summary and are not errors.
func (s *Service) Run(opts Options) (*Summary, error) {
	sourceRoot, err := filepath.Abs(opts.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving source root: %w", err)
	}
	if opts.BaseName == "" {
		return nil, fmt.Errorf("backup base name must not be empty")
	}

	summary := &Summary{
		RunID:           s.idgen.New(),
		SourceRoot:      sourceRoot,
		Recursive:       opts.Recursive,
		DeleteRequested: opts.Delete,
		UseDigest:       opts.UseDigest,
		PruneEmptyDirs:  opts.PruneEmptyDirs,
	}

	backupRoot, err := AllocateBackupDir(sourceRoot, opts.BaseName, s.clock)
	if err != nil {
		return nil, err
	}
	summary.BackupRoot = backupRoot
	s.logger.Info("backup directory allocated", "run", summary.RunID, "path", backupRoot)

	// Computed once, before any copy begins, and reused unchanged
	// through deletion.
	exclusions := NewExclusionSet(append([]string{filepath.Base(backupRoot)}, opts.ExcludeNames...)...)

	records, err := NewCopier(s.logger).Copy(sourceRoot, backupRoot, exclusions, opts.Recursive)
	if err != nil {
		s.logger.Error("copy aborted, partial backup left in place", "run", summary.RunID, "path", backupRoot, "error", err)
		return nil, err
	}
	summary.Copied = len(records)
	s.logger.Info("copy complete", "run", summary.RunID, "copied", len(records))

	if len(records) == 0 || !opts.Delete {
		s.ui.Report(summary)
		return summary, nil
	}

	if !opts.Force && !s.ui.Confirm(confirmPrompt) {
		s.logger.Info("deletion declined", "run", summary.RunID)
		summary.ConfirmDeclined = true
		s.ui.Report(summary)
		return summary, nil
	}

	report := NewDeleter(s.logger).Delete(records, sourceRoot, exclusions, opts.UseDigest, opts.PruneEmptyDirs)
	summary.Deleted = len(report.Deleted)
	summary.Pruned = len(report.Pruned)
	summary.Failures = report.Failed

	s.ui.Report(summary)
	return summary, nil
}
