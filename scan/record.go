// Package scan implements the directory ingestion engine: per-file
// classification, the chunked cancellable walker, and the record store that
// holds its output. Exactly one scan can be in flight per process; the
// coordinator in package engine enforces that and pairs each completed scan
// with a filesystem watcher.
package scan

import "time"

// MaxFileSizeBytes is the default size ceiling; larger files are recorded as
// skipped and never read.
const MaxFileSizeBytes = 5 * 1024 * 1024

// FileRecord is one observed file. Exactly one of binary, skipped, or
// normal-with-content describes a record; TokenCount is 0 whenever Content is
// empty.
type FileRecord struct {
	AbsolutePath string // normalized, forward slashes
	RelativePath string // relative to scan root, forward slashes
	Name         string
	SizeBytes    int64

	IsBinary    bool
	FileTypeTag string // set when binary ("PNG", "ZIP", ...)

	IsSkipped  bool
	SkipReason string // set when oversized or unreadable

	Content    string // empty when binary or skipped
	TokenCount int

	// ExcludedByDefault marks a soft static exclusion: the file is listed but
	// deselected by default. Distinct from a hard gitignore-style skip.
	ExcludedByDefault bool
}

// Outcome is the terminal state of a scan.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
	OutcomeTimedOut
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeTimedOut:
		return "timed out"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Result is the terminal summary of a scan. Files holds whatever accumulated
// before the terminal state, so a cancelled scan still carries its partial
// output.
type Result struct {
	Outcome  Outcome
	Files    []*FileRecord
	Duration time.Duration
	Err      error // set when Outcome is OutcomeErrored
}
