package snap

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Deleter removes verified originals and optionally prunes directories left
// empty. It consumes the records produced by the Copier and never touches
// the backup root.
type Deleter struct {
	logger Logger
}

// NewDeleter creates a Deleter.
func NewDeleter(logger Logger) *Deleter {
	return &Deleter{logger: logger}
}

// Delete verifies each record and removes its source on success. Every
// record is attempted independently: exclusion hits, verification failures,
// and per-file deletion errors are recorded and never abort the batch.
//
// The exclusion check runs before verification and is a hard safety rail:
// a source path with any excluded segment is never touched regardless of
// the verification result.
func (d *Deleter) Delete(records []CopyRecord, sourceRoot string, exclusions ExclusionSet, useDigest, pruneEmptyDirs bool) DeletionReport {
	var report DeletionReport

	for _, record := range records {
		if d.excludedSource(record.Source, sourceRoot, exclusions) {
			report.Failed = append(report.Failed, Failure{Path: record.Source, Reason: ReasonExcluded})
			continue
		}

		outcome := Verify(record, useDigest)
		if !outcome.OK {
			d.logger.Warn("verification failed", "path", record.Source, "reason", outcome.Reason)
			report.Failed = append(report.Failed, Failure{Path: record.Source, Reason: outcome.Reason})
			continue
		}

		if err := os.Remove(record.Source); err != nil {
			d.logger.Warn("delete failed", "path", record.Source, "error", err)
			report.Failed = append(report.Failed, Failure{Path: record.Source, Reason: err.Error()})
			continue
		}
		report.Deleted = append(report.Deleted, record.Source)
	}

	if pruneEmptyDirs {
		report.Pruned = d.pruneEmptyDirs(report.Deleted)
	}

	d.logger.Info("deletion complete",
		"deleted", len(report.Deleted),
		"failed", len(report.Failed),
		"pruned", len(report.Pruned),
	)
	return report
}

// excludedSource reports whether the source path matches the exclusion set,
// checking every path segment below the source root.
func (d *Deleter) excludedSource(source, sourceRoot string, exclusions ExclusionSet) bool {
	rel, err := filepath.Rel(sourceRoot, source)
	if err != nil {
		// Cannot relate the path to the root; fall back to the leaf name.
		return exclusions.Excluded(filepath.Base(source))
	}
	return exclusions.ExcludedPath(rel)
}

// pruneEmptyDirs removes directories left empty by the deletions. It
// collects the parent of every deleted file, deduplicated, and evaluates
// them deepest-first so children are considered before their ancestors.
// Removal is best-effort: failures are swallowed.
func (d *Deleter) pruneEmptyDirs(deleted []string) []string {
	seen := make(map[string]struct{}, len(deleted))
	var parents []string
	for _, path := range deleted {
		parent := filepath.Dir(path)
		if _, ok := seen[parent]; ok {
			continue
		}
		seen[parent] = struct{}{}
		parents = append(parents, parent)
	}

	sort.Slice(parents, func(i, j int) bool {
		return strings.Count(parents[i], string(filepath.Separator)) >
			strings.Count(parents[j], string(filepath.Separator))
	})

	var pruned []string
	for _, dir := range parents {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			d.logger.Debug("prune failed", "dir", dir, "error", err)
			continue
		}
		pruned = append(pruned, dir)
	}
	return pruned
}
