package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mathivhahy/pastemax/ignore"
	"github.com/mathivhahy/pastemax/pathutil"
)

// batchSize bounds per-directory file concurrency: files are processed in
// fixed-size concurrent batches whose results merge only once the whole batch
// has resolved.
const batchSize = 20

// Timeout is the wall-clock backstop for a single scan. A scan still running
// when it expires terminates through the same path as a manual cancel.
const Timeout = 60 * time.Second

// Run walks root depth-first and returns the terminal summary. Directories
// are fully processed (including nested recursion) before their sibling files;
// file order within the result is batch order then enumeration order. The
// context carries both manual cancellation and the wall-clock deadline;
// cancellation is polled before each directory, before each batch, and inside
// each per-file task. Records accumulated before cancellation are preserved.
func Run(ctx context.Context, root string, rules *ignore.RuleSet, pipeline *Pipeline, progress ProgressFunc, logger *slog.Logger) (result *Result) {
	start := time.Now()

	w := &walker{
		ctx:      ctx,
		root:     root,
		rules:    rules,
		pipeline: pipeline,
		progress: progress,
		logger:   logger,
	}
	// The engine must not scan its own bundle: prune the directory holding the
	// running executable when it sits inside the root.
	if exe, err := os.Executable(); err == nil {
		w.bundleDir = pathutil.Normalize(filepath.Dir(exe))
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("scan failed", "root", root, "panic", r)
			result = &Result{
				Outcome:  OutcomeErrored,
				Files:    w.records,
				Duration: time.Since(start),
				Err:      fmt.Errorf("scan failed: %v", r),
			}
		}
	}()

	err := w.walkDir(root, "")
	res := &Result{Files: w.records, Duration: time.Since(start)}
	switch {
	case err == nil:
		res.Outcome = OutcomeCompleted
	case ctx.Err() == context.DeadlineExceeded:
		res.Outcome = OutcomeTimedOut
	default:
		res.Outcome = OutcomeCancelled
	}
	return res
}

type walker struct {
	ctx       context.Context
	root      string
	rules     *ignore.RuleSet
	pipeline  *Pipeline
	progress  ProgressFunc
	logger    *slog.Logger
	bundleDir string

	records   []*FileRecord
	processed int
	total     int
}

func (w *walker) emit(p Progress) {
	if w.progress != nil {
		w.progress(p)
	}
}

// walkDir processes one directory: subdirectories first (recursively), then
// the directory's own files in batches. Returns the context error when the
// scan was cancelled or timed out; everything else is handled in place.
func (w *walker) walkDir(absDir, relDir string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	w.emit(Progress{Status: StatusScanning, Message: scanningMessage(relDir)})

	entries, err := os.ReadDir(filepath.FromSlash(absDir))
	if err != nil {
		// Unreadable subtree: skipped silently, never a scan failure.
		w.logger.Debug("skipping unreadable directory", "path", absDir, "error", err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		childAbs := pathutil.Normalize(filepath.Join(filepath.FromSlash(absDir), entry.Name()))
		childRel, err := pathutil.RelativeOf(w.root, childAbs)
		if err != nil || !pathutil.IsInsideRoot(childRel) {
			continue
		}
		if w.rules.Match(childRel, true) {
			continue
		}
		if w.bundleDir != "" && pathutil.Equal(childAbs, w.bundleDir) {
			continue
		}
		if err := w.walkDir(childAbs, childRel); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		childAbs := pathutil.Normalize(filepath.Join(filepath.FromSlash(absDir), entry.Name()))
		childRel, err := pathutil.RelativeOf(w.root, childAbs)
		if err != nil || !pathutil.IsInsideRoot(childRel) {
			continue
		}
		if w.rules.Match(childRel, false) {
			continue
		}
		files = append(files, childAbs)
	}
	w.total += len(files)

	for offset := 0; offset < len(files); offset += batchSize {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		end := offset + batchSize
		if end > len(files) {
			end = len(files)
		}
		batch := files[offset:end]
		results := make([]*FileRecord, len(batch))

		var wg sync.WaitGroup
		for i, absPath := range batch {
			wg.Add(1)
			go func(i int, absPath string) {
				defer wg.Done()
				if w.ctx.Err() != nil {
					return
				}
				record, err := w.pipeline.Process(absPath)
				if err != nil {
					w.logger.Debug("dropped file", "path", absPath, "error", err)
					return
				}
				results[i] = record
			}(i, absPath)
		}
		wg.Wait()

		// Merge in enumeration order only after the whole batch resolved.
		for _, record := range results {
			if record != nil {
				w.records = append(w.records, record)
			}
		}
		w.processed += len(batch)
		w.emit(Progress{
			Status:    StatusProcessing,
			Message:   fmt.Sprintf("Processing files %d/%d", w.processed, w.total),
			Processed: w.processed,
			Total:     w.total,
		})
	}

	return nil
}

func scanningMessage(relDir string) string {
	if relDir == "" {
		return "Scanning root directory"
	}
	return "Scanning directory: " + relDir
}
