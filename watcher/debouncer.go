package watcher

import (
	"sync"
	"time"
)

// rawEvent is a collapsed filesystem notification awaiting processing.
type rawEvent struct {
	Path string
	Op   eventOp
}

type eventOp int

const (
	opCreate eventOp = iota
	opWrite
	opRemove
	opRename
)

// debouncer collects filesystem notifications and emits them in batches after
// a quiet period. Multiple notifications for the same path within the window
// collapse into one carrying the latest op.
type debouncer struct {
	interval time.Duration
	events   map[string]rawEvent
	mu       sync.Mutex
	timer    *time.Timer
	output   chan []rawEvent
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		events:   make(map[string]rawEvent),
		output:   make(chan []rawEvent, 16),
	}
}

func (d *debouncer) Output() <-chan []rawEvent {
	return d.output
}

// Add records an event and restarts the quiet-period timer. A create
// followed by writes within the window stays a create, so a freshly written
// file surfaces as one add rather than an update.
func (d *debouncer) Add(path string, op eventOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.events[path]; ok && existing.Op == opCreate && op == opWrite {
		op = opCreate
	}
	d.events[path] = rawEvent{Path: path, Op: op}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.events) == 0 {
		return
	}

	batch := make([]rawEvent, 0, len(d.events))
	for _, event := range d.events {
		batch = append(batch, event)
	}

	d.events = make(map[string]rawEvent)
	d.output <- batch
}
