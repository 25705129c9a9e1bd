package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/primes"
)

// EnumerationResult encapsulates the outcome of a single enumeration.
// It serves as the shared domain type between orchestration and presentation layers.
type EnumerationResult struct {
	// Name is the human-readable name of the strategy (e.g., "Sieve of Eratosthenes").
	Name string
	// Strategy is the tag of the strategy that ran.
	Strategy primes.Strategy
	// Primes is the ascending list of primes. It is nil if an error occurred.
	Primes []int
	// Duration is the time taken to complete the enumeration.
	Duration time.Duration
	// Memory is the runtime allocation delta around the call. In comparison
	// mode it includes allocations of the concurrent strategies.
	Memory metrics.MemoryUsage
	// Err contains any error that occurred during the enumeration.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// N is the upper bound.
	N int
	// RawN is the bound exactly as typed, used in the header.
	RawN string
	Quiet   bool
	Verbose bool
	Details bool
}

// Bound returns the bound as it should appear in output headers.
func (o PresentationOptions) Bound() string {
	if o.RawN != "" {
		return o.RawN
	}
	return itoa(o.N)
}

// ProgressState is the lifecycle stage reported by a ProgressUpdate.
type ProgressState int

const (
	// StateStarted is sent when an enumerator begins.
	StateStarted ProgressState = iota
	// StateFinished is sent when an enumerator returns, successfully or not.
	StateFinished
)

// ProgressUpdate reports a lifecycle change of one enumerator. Strategies
// are pure functions and do not report intermediate progress, so updates
// are emitted by the orchestrator around each call.
type ProgressUpdate struct {
	// Index is the position of the enumerator in the executed slice.
	Index int
	// Name is the enumerator's human-readable name.
	Name  string
	State ProgressState
	// Elapsed is the duration of the call; set for StateFinished only.
	Elapsed time.Duration
	// Count is the number of primes found; set for successful StateFinished.
	Count int
	// Err is the failure, if any; set for StateFinished only.
	Err error
}

// ProgressReporter defines the interface for displaying enumeration progress.
// This interface decouples the orchestration layer from the presentation layer:
// implementations handle the visual representation (spinners, dashboards)
// while the orchestration layer focuses on coordinating the enumerations.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEnumerators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEnumerators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEnumerators int, out io.Writer) {
	f(wg, progressChan, numEnumerators, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting enumeration results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []EnumerationResult, out io.Writer)
	// PresentResult displays the primes found by one strategy.
	PresentResult(result EnumerationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles enumeration errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
