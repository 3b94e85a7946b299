package snap

// CopyRecord is an ordered (source, destination) pair for one successfully
// copied file. Records are produced by the Copier and are the single source
// of truth for what may later be deleted; deletion never re-scans the
// filesystem independently.
type CopyRecord struct {
	Source      string
	Destination string
}

// Failure reasons attached to records that could not be verified or deleted.
const (
	ReasonExcluded       = "excluded"
	ReasonMissing        = "missing"
	ReasonSizeMismatch   = "size_mismatch"
	ReasonDigestMismatch = "digest_mismatch"
	ReasonReadError      = "read_error"
)

// Failure pairs a source path with the reason it was not deleted.
type Failure struct {
	Path   string
	Reason string
}

// Outcome is the result of verifying a single CopyRecord.
type Outcome struct {
	OK     bool
	Reason string // one of the Reason constants when !OK
}

// DeletionReport accumulates the results of a deletion pass.
type DeletionReport struct {
	Deleted []string
	Failed  []Failure
	Pruned  []string
}

// Summary is the aggregate result of one backup run, consumed by the
// presentation layer.
type Summary struct {
	RunID      string
	SourceRoot string
	BackupRoot string

	Recursive       bool
	DeleteRequested bool
	UseDigest       bool
	PruneEmptyDirs  bool

	Copied   int
	Deleted  int
	Pruned   int
	Failures []Failure

	// ConfirmDeclined is set when deletion was requested but the user
	// declined the confirmation prompt. Originals are left intact.
	ConfirmDeclined bool
}

// FailedCount returns the number of records that could not be deleted.
func (s *Summary) FailedCount() int { return len(s.Failures) }
