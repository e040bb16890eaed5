package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mathivhahy/pastemax/ignore"
	"github.com/mathivhahy/pastemax/language"
	"github.com/mathivhahy/pastemax/pathutil"
	"github.com/mathivhahy/pastemax/token"
)

// Sentinel errors for paths the pipeline refuses outright. These are
// path-scope conditions, not failures: callers drop the path silently.
var (
	ErrOutsideRoot = errors.New("path outside scan root")
	ErrIgnored     = errors.New("path matches ignore rules")
	ErrNotRegular  = errors.New("not a regular file")
)

// Pipeline runs the single-file classify+read+count sequence. The scanner
// runs it for every admitted file; the watcher reuses the same instance for
// add and change events so live records stay consistent with the scan.
type Pipeline struct {
	Root        string // normalized absolute scan root
	Rules       *ignore.RuleSet
	Counter     token.Counter
	MaxFileSize int64
}

// Process turns one absolute path into a FileRecord. Per-file I/O problems
// (permission, vanished file, read failure) downgrade to a skipped record
// with a reason; only path-scope conditions return an error.
func (p *Pipeline) Process(absolutePath string) (*FileRecord, error) {
	abs := pathutil.Normalize(absolutePath)

	rel, err := pathutil.RelativeOf(p.Root, abs)
	if err != nil || !pathutil.IsInsideRoot(rel) {
		return nil, ErrOutsideRoot
	}
	if p.Rules.Match(rel, false) {
		return nil, ErrIgnored
	}

	record := &FileRecord{
		AbsolutePath:      abs,
		RelativePath:      rel,
		Name:              filepath.Base(filepath.FromSlash(abs)),
		ExcludedByDefault: p.Rules.ExcludedByDefault(rel),
	}

	info, err := os.Stat(filepath.FromSlash(abs))
	if err != nil {
		record.IsSkipped = true
		record.SkipReason = fmt.Sprintf("could not stat file: %v", err)
		return record, nil
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegular
	}
	record.SizeBytes = info.Size()

	maxSize := p.MaxFileSize
	if maxSize <= 0 {
		maxSize = MaxFileSizeBytes
	}
	if record.SizeBytes > maxSize {
		record.IsSkipped = true
		record.SkipReason = fmt.Sprintf("file too large (%.1f MB, limit %.1f MB)",
			float64(record.SizeBytes)/(1024*1024), float64(maxSize)/(1024*1024))
		return record, nil
	}

	if language.IsBinaryPath(abs) {
		record.IsBinary = true
		record.FileTypeTag = language.FileTypeTag(abs)
		return record, nil
	}

	data, err := os.ReadFile(filepath.FromSlash(abs))
	if err != nil {
		record.IsSkipped = true
		record.SkipReason = fmt.Sprintf("could not read file: %v", err)
		return record, nil
	}

	record.Content = string(data)
	record.TokenCount = p.Counter.Count(record.Content)
	return record, nil
}
