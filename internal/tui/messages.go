package tui

import (
	"time"

	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/sysmon"
)

// Messages from the orchestration bridge carry the generation of the run
// that produced them; the model ignores messages from superseded runs.

// ProgressMsg carries a lifecycle update for one strategy.
type ProgressMsg struct {
	Generation uint64
	Update     orchestration.ProgressUpdate
}

// ProgressDoneMsg is sent when the progress channel is closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// ComparisonResultsMsg carries the sorted results of a multi-strategy run.
type ComparisonResultsMsg struct {
	Generation uint64
	Results    []orchestration.EnumerationResult
}

// FinalResultMsg carries the result retained for display.
type FinalResultMsg struct {
	Generation uint64
	Result     orchestration.EnumerationResult
	Bound      string
}

// ErrorMsg carries an enumeration failure.
type ErrorMsg struct {
	Generation uint64
	Err        error
	Duration   time.Duration
}

// RunCompleteMsg is returned by the run command once the outcome is known.
type RunCompleteMsg struct {
	Generation uint64
	ExitCode   int
	// Status holds the global status lines of a comparison run.
	Status []string
}

// SysStatsMsg carries a system resource sample.
type SysStatsMsg sysmon.Stats

// TickMsg refreshes the elapsed timer and triggers the next sample.
type TickMsg time.Time

// ContextCancelledMsg is sent when the parent context is canceled.
type ContextCancelledMsg struct {
	Err error
}
