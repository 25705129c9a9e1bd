package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/primes"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Each enumerator sends two updates, so a buffer of this multiple
// never blocks an enumerator goroutine.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/primecalc/internal/orchestration"

// execOptions carries the optional collaborators of ExecuteEnumerations.
type execOptions struct {
	logger  logging.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// ExecOption configures ExecuteEnumerations.
type ExecOption func(*execOptions)

// WithLogger sets the logger used for per-enumerator diagnostics.
func WithLogger(l logging.Logger) ExecOption {
	return func(o *execOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records every enumeration on m.
func WithMetrics(m *metrics.Metrics) ExecOption {
	return func(o *execOptions) { o.metrics = m }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) ExecOption {
	return func(o *execOptions) {
		if t != nil {
			o.tracer = t
		}
	}
}

// ExecuteEnumerations orchestrates the concurrent execution of one or more
// prime enumerations.
//
// Each enumerator runs in its own goroutine; the strategies themselves stay
// single-threaded. Results keep the order of enumerators. When ctx ends
// before an enumerator returns, its result carries the context error and the
// enumerator goroutine is abandoned.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - enumerators: The enumerators to execute.
//   - n: The inclusive upper bound.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//   - opts: Optional logger, metrics and tracer.
//
// Returns:
//   - []EnumerationResult: A slice containing the result of each enumerator.
func ExecuteEnumerations(ctx context.Context, enumerators []primes.Enumerator, n int, progressReporter ProgressReporter, out io.Writer, opts ...ExecOption) []EnumerationResult {
	o := execOptions{
		logger: logging.NopLogger{},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if progressReporter == nil {
		progressReporter = NullProgressReporter{}
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]EnumerationResult, len(enumerators))
	progressChan := make(chan ProgressUpdate, len(enumerators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(enumerators), out)

	for i, e := range enumerators {
		idx, enumerator := i, e
		g.Go(func() error {
			results[idx] = runOne(ctx, o, enumerator, idx, n, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// runOne executes a single enumerator and reports its lifecycle.
func runOne(ctx context.Context, o execOptions, e primes.Enumerator, idx, n int, progressChan chan<- ProgressUpdate) EnumerationResult {
	name := e.Name()
	strategy := e.Strategy()
	ctx, span := o.tracer.Start(ctx, "primes.enumerate", trace.WithAttributes(
		attribute.String("primes.strategy", strategy.String()),
		attribute.Int("primes.bound", n),
	))
	defer span.End()

	progressChan <- ProgressUpdate{Index: idx, Name: name, State: StateStarted}
	o.logger.Debug("enumeration started",
		logging.String("strategy", strategy.String()),
		logging.Int("n", n),
	)

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	start := time.Now()
	found, err := enumerate(ctx, e, n)
	elapsed := time.Since(start)
	usage := collector.Snapshot().Since(before)

	if err != nil && !apperrors.IsContextError(err) {
		err = apperrors.EnumerationError{Strategy: strategy.String(), Cause: err}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Debug("enumeration failed",
			logging.String("strategy", strategy.String()),
			logging.Duration("elapsed", elapsed),
			logging.Err(err),
		)
	} else {
		span.SetAttributes(attribute.Int("primes.count", len(found)))
		o.logger.Debug("enumeration finished",
			logging.String("strategy", strategy.String()),
			logging.Int("count", len(found)),
			logging.Duration("elapsed", elapsed),
		)
	}
	if o.metrics != nil {
		o.metrics.ObserveEnumeration(strategy.String(), n, len(found), elapsed, err)
	}

	progressChan <- ProgressUpdate{
		Index: idx, Name: name, State: StateFinished,
		Elapsed: elapsed, Count: len(found), Err: err,
	}
	return EnumerationResult{
		Name: name, Strategy: strategy, Primes: found, Duration: elapsed, Memory: usage, Err: err,
	}
}

// enumerate runs e.Enumerate and returns early if the context ends first.
// A passed deadline is reported as an apperrors.TimeoutError carrying the
// time budget that was left when the enumeration started; cancellation is
// returned as ctx.Err().
func enumerate(ctx context.Context, e primes.Enumerator, n int) ([]int, error) {
	var limit time.Duration
	if deadline, ok := ctx.Deadline(); ok {
		limit = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return nil, contextError(err, e.Strategy(), limit)
	}
	type outcome struct {
		primes []int
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		p, err := e.Enumerate(n)
		done <- outcome{p, err}
	}()
	select {
	case res := <-done:
		return res.primes, res.err
	case <-ctx.Done():
		return nil, contextError(ctx.Err(), e.Strategy(), limit)
	}
}

func contextError(err error, strategy primes.Strategy, limit time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: strategy.String(), Limit: max(limit, 0)}
	}
	return err
}

// AnalyzeComparisonResults processes the results of one or more strategies
// and generates the report.
//
// A single result is presented directly: the primes on success, the error
// message otherwise. Several results are sorted (successes first, then by
// duration), shown in a comparison table and checked for consistency before
// the fastest successful result is presented.
//
// Parameters:
//   - results: The slice of enumeration results to analyze.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The handler mapping errors to messages and exit codes.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []EnumerationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	if len(results) == 0 {
		fmt.Fprintln(out, "No strategy was executed.")
		return apperrors.ExitErrorGeneric
	}
	if len(results) == 1 {
		res := results[0]
		if res.Err != nil {
			return errHandler.HandleError(res.Err, res.Duration, out)
		}
		presenter.PresentResult(res, opts, out)
		return apperrors.ExitSuccess
	}

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *EnumerationResult
	var firstError error
	var firstErrorDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
				firstErrorDuration = results[i].Duration
			}
		} else if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the enumeration.\n")
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	for _, res := range results {
		if res.Err == nil && !slices.Equal(res.Primes, firstValid.Primes) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the strategies.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
