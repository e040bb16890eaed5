// Package engine coordinates the scan/watch lifecycle: exactly one scan may
// be in flight and exactly one watch session may be armed per process. All
// session transitions go through the Coordinator, which serializes them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mathivhahy/pastemax/ignore"
	"github.com/mathivhahy/pastemax/pathutil"
	"github.com/mathivhahy/pastemax/scan"
	"github.com/mathivhahy/pastemax/token"
	"github.com/mathivhahy/pastemax/watcher"
)

// ErrBusy rejects a scan request arriving while another scan is active.
// Requests are never queued.
var ErrBusy = errors.New("a scan is already in progress")

// Options configures a Coordinator.
type Options struct {
	Logger         *slog.Logger
	Counter        token.Counter
	Progress       scan.ProgressFunc // optional progress sink
	MaxFileSize    int64             // 0 means the engine default
	CustomPatterns []string          // extra hard-ignore globs
}

// Coordinator owns the active scan session, the record store, and the paired
// watch session. Scan, Cancel, and Close serialize against each other; the
// scanning flag is the re-entrancy guard checked without taking the lock so a
// busy rejection never waits behind a running scan.
type Coordinator struct {
	logger         *slog.Logger
	counter        token.Counter
	progress       scan.ProgressFunc
	maxFileSize    int64
	customPatterns []string

	store    *scan.Store
	scanning atomic.Bool

	mu         sync.Mutex // guards everything below
	cancelScan context.CancelFunc
	watch      *watcher.Watcher
	watchDone  chan struct{}
	root       string
	lastResult *scan.Result
	lastScanAt time.Time

	events chan watcher.Event
}

// New creates a Coordinator. The token counter strategy and logger are fixed
// for the coordinator's lifetime.
func New(opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	counter := opts.Counter
	if counter == nil {
		counter = token.EstimateCounter{}
	}
	return &Coordinator{
		logger:         logger,
		counter:        counter,
		progress:       opts.Progress,
		maxFileSize:    opts.MaxFileSize,
		customPatterns: opts.CustomPatterns,
		store:          scan.NewStore(),
		events:         make(chan watcher.Event, 64),
	}
}

// Scan runs a full scan of root. A request arriving while a scan is active
// fails fast with ErrBusy. Starting from idle tears down the previous watch
// session and clears the store; on completion a new watch session is armed
// with the ruleset captured for this scan. The returned result carries
// partial records when the scan was cancelled or timed out.
func (c *Coordinator) Scan(root string) (*scan.Result, error) {
	if !c.scanning.CompareAndSwap(false, true) {
		c.emit(scan.Progress{Status: scan.StatusBusy, Message: "a scan is already in progress"})
		return nil, ErrBusy
	}
	defer c.scanning.Store(false)

	absRoot, err := pathutil.ToAbsolute(root)
	if err != nil {
		c.emit(scan.Progress{Status: scan.StatusError, Message: err.Error()})
		return nil, fmt.Errorf("resolving root %q: %w", root, err)
	}
	if info, statErr := os.Stat(filepath.FromSlash(absRoot)); statErr != nil || !info.IsDir() {
		c.emit(scan.Progress{Status: scan.StatusError, Message: "root is not a readable directory: " + absRoot})
		return nil, fmt.Errorf("root %q is not a readable directory", absRoot)
	}

	// Tear down the previous session before anything touches the store.
	c.disarmWatcher()
	c.store.Clear()

	rules := ignore.Build(absRoot, c.customPatterns...)
	pipeline := &scan.Pipeline{
		Root:        absRoot,
		Rules:       rules,
		Counter:     c.counter,
		MaxFileSize: c.maxFileSize,
	}

	ctx, cancel := context.WithTimeout(context.Background(), scan.Timeout)
	defer cancel()
	c.mu.Lock()
	c.cancelScan = cancel
	c.root = absRoot
	c.mu.Unlock()

	c.logger.Info("scan started", "root", absRoot)
	result := scan.Run(ctx, absRoot, rules, pipeline, c.emit, c.logger)

	c.mu.Lock()
	c.cancelScan = nil
	c.lastResult = result
	c.lastScanAt = time.Now()
	c.mu.Unlock()

	c.store.ReplaceAll(result.Files)
	c.emitTerminal(result)
	c.logger.Info("scan finished",
		"root", absRoot,
		"outcome", result.Outcome.String(),
		"files", len(result.Files),
		"duration", result.Duration,
	)

	if result.Outcome == scan.OutcomeCompleted {
		c.armWatcher(absRoot, rules, pipeline)
	}
	return result, nil
}

// Cancel requests cooperative cancellation of the active scan. A no-op when
// no scan is running.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	cancel := c.cancelScan
	c.mu.Unlock()
	if cancel != nil {
		c.logger.Info("scan cancellation requested")
		cancel()
	}
}

// Records returns the current reconciled record set in sorted path order.
func (c *Coordinator) Records() []*scan.FileRecord {
	return c.store.All()
}

// Record returns the record for a normalized absolute path, or nil.
func (c *Coordinator) Record(absolutePath string) *scan.FileRecord {
	return c.store.Get(pathutil.Normalize(absolutePath))
}

// Events returns the stream of live add/update/remove deltas. Deltas are
// applied to the store before being forwarded; slow consumers lose events
// rather than stalling the watcher.
func (c *Coordinator) Events() <-chan watcher.Event {
	return c.events
}

// Root returns the root of the most recent scan, or "".
func (c *Coordinator) Root() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

// Status describes the coordinator for collaborators.
type Status struct {
	Root         string
	Scanning     bool
	WatcherArmed bool
	FileCount    int
	TotalTokens  int
	LastOutcome  string
	LastScanAt   time.Time
	LastDuration time.Duration
}

// Snapshot returns the current status.
func (c *Coordinator) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{
		Root:         c.root,
		Scanning:     c.scanning.Load(),
		WatcherArmed: c.watch != nil,
		FileCount:    c.store.Len(),
		TotalTokens:  c.store.TotalTokens(),
		LastScanAt:   c.lastScanAt,
	}
	if c.lastResult != nil {
		status.LastOutcome = c.lastResult.Outcome.String()
		status.LastDuration = c.lastResult.Duration
	}
	return status
}

// Close cancels any active scan and tears down the watch session.
func (c *Coordinator) Close() {
	c.Cancel()
	c.disarmWatcher()
}

// armWatcher starts a watch session for a completed scan, replacing any
// previous one. Watcher absence is a degraded mode, not an error: the scan
// result stands, it just goes stale without live updates.
func (c *Coordinator) armWatcher(root string, rules *ignore.RuleSet, pipeline *scan.Pipeline) {
	c.disarmWatcher()

	w, err := watcher.Arm(root, rules, pipeline, c.logger)
	if err != nil {
		c.logger.Warn("failed to arm watcher, continuing without live updates", "root", root, "error", err)
		return
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.watch = w
	c.watchDone = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		for event := range w.Events() {
			c.applyDelta(event)
		}
	}()
	c.logger.Info("watcher armed", "root", root)
}

// disarmWatcher stops the current watch session, if any, and waits for its
// delta consumer to drain.
func (c *Coordinator) disarmWatcher() {
	c.mu.Lock()
	w := c.watch
	done := c.watchDone
	c.watch = nil
	c.watchDone = nil
	c.mu.Unlock()

	if w == nil {
		return
	}
	if err := w.Close(); err != nil {
		c.logger.Warn("error closing watcher", "error", err)
	}
	if done != nil {
		<-done
	}
	c.logger.Info("watcher disarmed", "root", w.Root())
}

// applyDelta reconciles one watcher event into the store and forwards it.
func (c *Coordinator) applyDelta(event watcher.Event) {
	switch event.Kind {
	case watcher.EventRemove:
		if !c.store.Remove(event.Path) {
			return
		}
	default:
		if event.Record == nil {
			return
		}
		c.store.Put(event.Record)
	}
	c.logger.Debug("applied delta", "kind", event.Kind.String(), "path", event.Path)

	select {
	case c.events <- event:
	default:
		c.logger.Debug("event consumer lagging, dropped delta", "path", event.Path)
	}
}

func (c *Coordinator) emit(p scan.Progress) {
	if c.progress != nil {
		c.progress(p)
	}
}

func (c *Coordinator) emitTerminal(result *scan.Result) {
	switch result.Outcome {
	case scan.OutcomeCompleted:
		c.emit(scan.Progress{
			Status:  scan.StatusComplete,
			Message: fmt.Sprintf("Scan complete: %d files", len(result.Files)),
		})
	case scan.OutcomeCancelled:
		c.emit(scan.Progress{Status: scan.StatusCancelled, Message: "Scan cancelled"})
	case scan.OutcomeTimedOut:
		c.emit(scan.Progress{Status: scan.StatusCancelled, Message: "Scan timed out"})
	case scan.OutcomeErrored:
		message := "Scan failed"
		if result.Err != nil {
			message = "Scan failed: " + result.Err.Error()
		}
		c.emit(scan.Progress{Status: scan.StatusError, Message: message})
	}
}
