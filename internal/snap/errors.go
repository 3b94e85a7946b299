package snap

import "fmt"

// AllocationError is returned when the backup directory cannot be created
// for a reason other than a name collision. It is fatal: the run aborts
// before any copying starts.
type AllocationError struct {
	Path string
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocating backup directory %s: %v", e.Path, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// CopyError is returned when copying a single file fails. It is fatal:
// the run aborts, leaving the partially filled backup root in place for
// inspection. The error names that root so the user knows what to inspect.
type CopyError struct {
	Source     string
	BackupRoot string
	Err        error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s: %v (partial backup left in %s)", e.Source, e.Err, e.BackupRoot)
}

func (e *CopyError) Unwrap() error { return e.Err }
