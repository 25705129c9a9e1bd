package orchestration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProgressTracker aggregates lifecycle updates from several enumerators.
// Both the CLI spinner and the dashboard use it to avoid duplicating the
// bookkeeping. It is not safe for concurrent use; a single reporter
// goroutine owns it.
type ProgressTracker struct {
	names    []string
	states   []ProgressState
	started  []bool
	elapsed  []time.Duration
	failed   []bool
	finished int
}

// NewProgressTracker creates a tracker for numEnumerators enumerators.
// Returns nil if numEnumerators <= 0.
func NewProgressTracker(numEnumerators int) *ProgressTracker {
	if numEnumerators <= 0 {
		return nil
	}
	return &ProgressTracker{
		names:   make([]string, numEnumerators),
		states:  make([]ProgressState, numEnumerators),
		started: make([]bool, numEnumerators),
		elapsed: make([]time.Duration, numEnumerators),
		failed:  make([]bool, numEnumerators),
	}
}

// Update records one update. Updates with an out-of-range index are ignored.
func (t *ProgressTracker) Update(u ProgressUpdate) {
	if u.Index < 0 || u.Index >= len(t.states) {
		return
	}
	t.names[u.Index] = u.Name
	switch u.State {
	case StateStarted:
		t.started[u.Index] = true
	case StateFinished:
		if t.states[u.Index] != StateFinished {
			t.finished++
		}
		t.started[u.Index] = true
		t.states[u.Index] = StateFinished
		t.elapsed[u.Index] = u.Elapsed
		t.failed[u.Index] = u.Err != nil
	}
}

// Finished returns how many enumerators have returned.
func (t *ProgressTracker) Finished() int { return t.finished }

// Total returns the number of tracked enumerators.
func (t *ProgressTracker) Total() int { return len(t.states) }

// Fraction returns the finished share in [0, 1].
func (t *ProgressTracker) Fraction() float64 {
	return float64(t.finished) / float64(len(t.states))
}

// Failed returns how many enumerators returned an error.
func (t *ProgressTracker) Failed() int {
	count := 0
	for i, failed := range t.failed {
		if failed && t.states[i] == StateFinished {
			count++
		}
	}
	return count
}

// Elapsed returns the duration reported for the enumerator at idx, zero if
// it has not finished.
func (t *ProgressTracker) Elapsed(idx int) time.Duration {
	if idx < 0 || idx >= len(t.elapsed) {
		return 0
	}
	return t.elapsed[idx]
}

// Running returns the names of enumerators that started but did not finish.
func (t *ProgressTracker) Running() []string {
	var running []string
	for i, started := range t.started {
		if started && t.states[i] != StateFinished {
			running = append(running, t.names[i])
		}
	}
	return running
}

// Summary renders a one-line status such as "1/3 done, running: brute force".
func (t *ProgressTracker) Summary() string {
	s := fmt.Sprintf("%d/%d done", t.finished, len(t.states))
	if running := t.Running(); len(running) > 0 {
		s += ", running: " + strings.Join(running, ", ")
	}
	return s
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
