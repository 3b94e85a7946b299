package snap

import (
	"fmt"
	"os"
	"path/filepath"
)

// timestampLayout is the backup directory suffix: date and time to the
// second, one underscore between them.
const timestampLayout = "20060102_150405"

// AllocateBackupDir creates a new, never-before-used backup directory under
// sourceRoot and returns its absolute path.
//
// The first candidate is {baseName}_{timestamp}. If that directory already
// exists (two runs within the same second), it falls back to {baseName}_1,
// {baseName}_2, … until creation succeeds. Creation failures other than
// "already exists" return an *AllocationError.
func AllocateBackupDir(sourceRoot, baseName string, clock Clock) (string, error) {
	timestamp := clock.Now().Format(timestampLayout)
	candidate := filepath.Join(sourceRoot, fmt.Sprintf("%s_%s", baseName, timestamp))

	err := os.Mkdir(candidate, 0755)
	if err == nil {
		return candidate, nil
	}
	if !os.IsExist(err) {
		return "", &AllocationError{Path: candidate, Err: err}
	}

	for i := 1; ; i++ {
		candidate = filepath.Join(sourceRoot, fmt.Sprintf("%s_%d", baseName, i))
		err := os.Mkdir(candidate, 0755)
		if err == nil {
			return candidate, nil
		}
		if !os.IsExist(err) {
			return "", &AllocationError{Path: candidate, Err: err}
		}
	}
}
