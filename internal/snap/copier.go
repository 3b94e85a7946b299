package snap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Copier duplicates files from a source root into a backup root, recording
// each (source, destination) pair it successfully created. It creates
// directories and files under the backup root and never mutates the source.
type Copier struct {
	logger Logger
}

// NewCopier creates a Copier.
func NewCopier(logger Logger) *Copier {
	return &Copier{logger: logger}
}

// Copy duplicates files from sourceRoot into backupRoot and returns the
// records in visit order. In flat mode only direct regular-file children are
// copied and directories are skipped entirely. In recursive mode the full
// subtree is mirrored, skipping any subtree whose name matches an exclusion.
//
// An I/O failure while copying one file is fatal for the run and is returned
// as a *CopyError; the partially filled backup root is left in place.
func (c *Copier) Copy(sourceRoot, backupRoot string, exclusions ExclusionSet, recursive bool) ([]CopyRecord, error) {
	if recursive {
		return c.copyTree(sourceRoot, backupRoot, exclusions)
	}
	return c.copyFlat(sourceRoot, backupRoot, exclusions)
}

// copyFlat copies the direct regular-file children of sourceRoot.
func (c *Copier) copyFlat(sourceRoot, backupRoot string, exclusions ExclusionSet) ([]CopyRecord, error) {
	entries, err := os.ReadDir(sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var records []CopyRecord
	for _, entry := range entries {
		if exclusions.Excluded(entry.Name()) {
			c.logger.Debug("entry excluded", "name", entry.Name())
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		src := filepath.Join(sourceRoot, entry.Name())
		dst := filepath.Join(backupRoot, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return records, &CopyError{Source: src, BackupRoot: backupRoot, Err: err}
		}
		records = append(records, CopyRecord{Source: src, Destination: dst})
	}
	return records, nil
}

// copyTree mirrors the full subtree of sourceRoot under backupRoot using an
// explicit work-list of pending directories. os.ReadDir returns name-sorted
// entries, so the visit order is deterministic for a fixed tree. Excluded
// directories are never enqueued, which skips their whole subtree.
func (c *Copier) copyTree(sourceRoot, backupRoot string, exclusions ExclusionSet) ([]CopyRecord, error) {
	var records []CopyRecord
	pending := []string{"."}

	for len(pending) > 0 {
		rel := pending[0]
		pending = pending[1:]

		srcDir := filepath.Join(sourceRoot, rel)
		dstDir := filepath.Join(backupRoot, rel)

		// Idempotent: mirroring an already-created directory is not an error.
		if err := os.MkdirAll(dstDir, 0755); err != nil {
			return records, &CopyError{Source: srcDir, BackupRoot: backupRoot, Err: fmt.Errorf("creating directory: %w", err)}
		}

		entries, err := os.ReadDir(srcDir)
		if err != nil {
			return records, &CopyError{Source: srcDir, BackupRoot: backupRoot, Err: fmt.Errorf("reading directory: %w", err)}
		}

		for _, entry := range entries {
			if exclusions.Excluded(entry.Name()) {
				c.logger.Debug("subtree excluded", "dir", rel, "name", entry.Name())
				continue
			}

			switch {
			case entry.IsDir():
				pending = append(pending, filepath.Join(rel, entry.Name()))
			case entry.Type().IsRegular():
				src := filepath.Join(srcDir, entry.Name())
				dst := filepath.Join(dstDir, entry.Name())
				if err := copyFile(src, dst); err != nil {
					return records, &CopyError{Source: src, BackupRoot: backupRoot, Err: err}
				}
				records = append(records, CopyRecord{Source: src, Destination: dst})
			}
		}
	}
	return records, nil
}

// copyFile duplicates a single regular file, preserving permission bits and
// the modification timestamp. An existing destination is overwritten.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("writing destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	// The destination may predate this run (overwrite case), so apply the
	// permission bits explicitly rather than relying on the create mode.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting modification time: %w", err)
	}
	return nil
}
