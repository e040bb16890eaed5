// Package watcher keeps a completed scan's record set live: it subscribes to
// filesystem notifications under the scan root and replays each change through
// the same classification pipeline the scanner used. The ignore ruleset is the
// one captured when the paired scan started; it is never rebuilt here, so a
// file that the scan would have excluded is never surfaced by the watcher.
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mathivhahy/pastemax/ignore"
	"github.com/mathivhahy/pastemax/pathutil"
	"github.com/mathivhahy/pastemax/scan"
)

// debounceInterval is the quiet period collapsing notification bursts.
const debounceInterval = 100 * time.Millisecond

// Write-stabilization: a changed file is processed only once its size has
// held steady for stableFor, polled every stablePoll. stableMaxWait caps the
// wait for files written continuously (logs etc.).
const (
	stablePoll    = 100 * time.Millisecond
	stableFor     = 500 * time.Millisecond
	stableMaxWait = 10 * time.Second
)

// EventKind discriminates watcher events.
type EventKind int

const (
	EventAdd EventKind = iota
	EventUpdate
	EventRemove
)

func (k EventKind) String() string {
	switch k {
	case EventAdd:
		return "add"
	case EventUpdate:
		return "update"
	default:
		return "remove"
	}
}

// Event is one incremental delta. Add and Update carry the freshly processed
// record (which may itself be skipped or binary, so callers can still list
// it); Remove carries only the normalized absolute path.
type Event struct {
	Kind   EventKind
	Path   string // normalized absolute path
	Record *scan.FileRecord
}

// Watcher is a live watch session paired with the scan that produced its
// ruleset. One per root; arming a new one requires closing the previous.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *debouncer
	rules     *ignore.RuleSet
	pipeline  *scan.Pipeline
	root      string
	logger    *slog.Logger
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Arm creates a watch session on root using the ruleset and pipeline captured
// from the completed scan, and starts its event loops. Every non-ignored
// directory under root is registered for notifications.
func Arm(root string, rules *ignore.RuleSet, pipeline *scan.Pipeline, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: newDebouncer(debounceInterval),
		rules:     rules,
		pipeline:  pipeline,
		root:      root,
		logger:    logger,
		events:    make(chan Event, 64),
		done:      make(chan struct{}),
	}

	err = filepath.WalkDir(filepath.FromSlash(root), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		abs := pathutil.Normalize(path)
		rel, relErr := pathutil.RelativeOf(root, abs)
		if relErr != nil || !pathutil.IsInsideRoot(rel) {
			return filepath.SkipDir
		}
		if rel != "." && w.rules.Match(rel, true) {
			return filepath.SkipDir
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			w.logger.Warn("failed to watch directory", "path", abs, "error", watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w.wg.Add(2)
	go w.listen()
	go w.dispatch()
	return w, nil
}

// Events returns the channel of incremental deltas. It is closed when the
// session is torn down.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Root returns the root this session is armed on.
func (w *Watcher) Root() string {
	return w.root
}

// Close tears down the session. Idempotent.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}

// listen consumes raw fsnotify notifications, filters them against the
// session ruleset, and feeds survivors to the debouncer. Watcher errors are
// logged and never tear down the session.
func (w *Watcher) listen() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleNotification(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleNotification(event fsnotify.Event) {
	abs := pathutil.Normalize(event.Name)

	rel, err := pathutil.RelativeOf(w.root, abs)
	if err != nil || !pathutil.IsInsideRoot(rel) {
		return
	}

	// New directory: register it so events under it are seen. No delta is
	// emitted for the directory itself.
	if event.Has(fsnotify.Create) {
		if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
			if !w.rules.Match(rel, true) {
				if addErr := w.fsWatcher.Add(event.Name); addErr != nil {
					w.logger.Warn("failed to watch new directory", "path", abs, "error", addErr)
				}
			}
			return
		}
	}

	if w.rules.Match(rel, false) {
		return
	}

	var op eventOp
	switch {
	case event.Has(fsnotify.Create):
		op = opCreate
	case event.Has(fsnotify.Write):
		op = opWrite
	case event.Has(fsnotify.Remove):
		op = opRemove
	case event.Has(fsnotify.Rename):
		op = opRename
	default:
		return
	}

	w.debouncer.Add(abs, op)
}

// dispatch turns debounced notifications into record deltas.
func (w *Watcher) dispatch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case batch, ok := <-w.debouncer.Output():
			if !ok {
				return
			}
			for _, event := range batch {
				w.processEvent(event)
			}
		}
	}
}

func (w *Watcher) processEvent(event rawEvent) {
	switch event.Op {
	case opRemove, opRename:
		w.send(Event{Kind: EventRemove, Path: event.Path})
		return
	}

	if !w.waitForStableSize(event.Path) {
		// Vanished mid-write; the remove notification will follow.
		return
	}

	record, err := w.pipeline.Process(event.Path)
	if err != nil {
		w.logger.Debug("dropped watcher event", "path", event.Path, "error", err)
		return
	}

	kind := EventUpdate
	if event.Op == opCreate {
		kind = EventAdd
	}
	w.send(Event{Kind: kind, Path: event.Path, Record: record})
}

// waitForStableSize polls the file until its size has been unchanged for
// stableFor, so partially written files are not processed twice. Returns
// false when the file disappears while waiting; a file still growing at
// stableMaxWait is processed as-is.
func (w *Watcher) waitForStableSize(path string) bool {
	var lastSize int64 = -1
	stableSince := time.Now()
	deadline := time.Now().Add(stableMaxWait)

	ticker := time.NewTicker(stablePoll)
	defer ticker.Stop()

	for {
		info, err := os.Stat(filepath.FromSlash(path))
		if err != nil {
			return false
		}
		if info.Size() == lastSize {
			if time.Since(stableSince) >= stableFor {
				return true
			}
		} else {
			lastSize = info.Size()
			stableSince = time.Now()
		}
		if time.Now().After(deadline) {
			return true
		}

		select {
		case <-w.done:
			return false
		case <-ticker.C:
		}
	}
}

func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
	case <-w.done:
	}
}
