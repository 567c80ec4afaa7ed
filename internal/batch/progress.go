package batch

import (
	"fmt"
	"sync"
	"time"
)

// Progress is a snapshot of one batch run. Success + Failed always
// equals Current; at completion Current equals Total.
type Progress struct {
	Total      int          `json:"total"`
	Current    int          `json:"current"`
	Success    int          `json:"success"`
	Failed     int          `json:"failed"`
	Processing bool         `json:"isProcessing"`
	Status     string       `json:"statusMessage"`
	ItemType   string       `json:"itemType,omitempty"` // "movie" or "episode"
	Error      string       `json:"error,omitempty"`    // set when scope resolution failed
	Results    []ItemResult `json:"results"`
}

// Tracker owns the progress state of the batch run in flight and
// publishes throttled snapshots to subscribers. Counters are updated
// on every item; publication happens at most once per interval plus
// once on the final item, so a reactive UI is not flooded.
type Tracker struct {
	mu          sync.RWMutex
	progress    Progress
	subscribers []chan Progress

	interval    time.Duration
	lastPublish time.Time
}

// NewTracker creates a tracker publishing at most once per interval.
func NewTracker(interval time.Duration) *Tracker {
	return &Tracker{interval: interval}
}

// Snapshot returns a copy of the current progress state.
func (t *Tracker) Snapshot() Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.copyLocked()
}

// Processing reports whether a run is in flight. The UI layer watches
// this to install a navigation-warning handler while true.
func (t *Tracker) Processing() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progress.Processing
}

// Subscribe returns a channel receiving progress snapshots. Delivery is
// non-blocking; a slow subscriber misses intermediate snapshots.
func (t *Tracker) Subscribe(bufferSize int) <-chan Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan Progress, bufferSize)
	t.subscribers = append(t.subscribers, ch)
	return ch
}

// copyLocked clones the state including the results slice, so callers
// never observe a slice the run loop is still appending to.
func (t *Tracker) copyLocked() Progress {
	p := t.progress
	p.Results = make([]ItemResult, len(t.progress.Results))
	copy(p.Results, t.progress.Results)
	return p
}

// publishLocked delivers a snapshot to all subscribers without blocking.
func (t *Tracker) publishLocked() {
	snap := t.copyLocked()
	for _, ch := range t.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
	t.lastPublish = time.Now()
}

// begin resets the tracker for a new run and publishes immediately.
func (t *Tracker) begin(total int, itemType, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress = Progress{
		Total:      total,
		Processing: true,
		Status:     status,
		ItemType:   itemType,
		Results:    nil,
	}
	t.publishLocked()
}

// setStatus replaces the status message and publishes.
func (t *Tracker) setStatus(status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Status = status
	t.publishLocked()
}

// setFetchProgress reports metadata-fetch progress during the prefetch
// phase, where Total temporarily reflects the items being fetched.
func (t *Tracker) setFetchProgress(fetched, toFetch int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Total = toFetch
	t.progress.Current = fetched
	t.progress.Status = fmt.Sprintf("Fetched metadata: %d / %d", fetched, toFetch)
	t.publishLocked()
}

// record counts one processed item, retaining the detailed result only
// when retain is true. The snapshot is published when the throttle
// interval elapsed or final is set.
func (t *Tracker) record(res ItemResult, retain, final bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.Current++
	if res.Success {
		t.progress.Success++
	} else {
		t.progress.Failed++
	}
	if retain {
		t.progress.Results = append(t.progress.Results, res)
	}
	t.progress.Status = fmt.Sprintf("Processing %d of %d...", t.progress.Current, t.progress.Total)

	if final || time.Since(t.lastPublish) > t.interval {
		t.publishLocked()
	}
}

// finish marks the run complete and publishes the terminal snapshot.
func (t *Tracker) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.Processing = false
	t.progress.Current = t.progress.Total
	t.progress.Status = fmt.Sprintf("Completed! %d successful, %d failed/skipped.",
		t.progress.Success, t.progress.Failed)
	t.publishLocked()
}

// fail returns the tracker to idle after a failed scope resolution,
// keeping a single error message and no partial report.
func (t *Tracker) fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = Progress{Error: msg}
	t.publishLocked()
}

// Reset discards the report. The presentation layer calls this when the
// user dismisses it.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = Progress{}
	t.publishLocked()
}
