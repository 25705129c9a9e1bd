package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/primecalc/internal/cli"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/primes"
	"github.com/agbru/primecalc/internal/ui"
)

// runCalculate orchestrates the execution of the CLI enumeration command.
// Primes and results go to out; diagnostics and progress go to ErrWriter
// so that out can be piped.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// An invalid bound fails every strategy the same way: report it once
	// instead of fanning out.
	if err := primes.ValidateBound(a.Config.N); err != nil {
		a.Logger.Debug("rejected upper bound", logging.Int("n", a.Config.N), logging.Err(err))
		errOut := out
		if a.Config.Quiet {
			errOut = a.ErrWriter
		}
		return cli.CLIResultPresenter{}.HandleError(err, 0, errOut)
	}

	// Memory budget validation
	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(); code != apperrors.ExitSuccess {
			return code
		}
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	enumerators := orchestration.SelectEnumerators(a.Config.Algo, a.Registry)

	if a.Config.Details {
		cli.PrintExecutionConfig(a.Config, a.ErrWriter)
		cli.PrintExecutionMode(enumerators, a.ErrWriter)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.ErrWriter
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	execOpts := []orchestration.ExecOption{orchestration.WithLogger(a.Logger)}
	if a.Metrics != nil {
		execOpts = append(execOpts, orchestration.WithMetrics(a.Metrics))
	}
	results := orchestration.ExecuteEnumerations(ctx, enumerators, a.Config.N, progressReporter, progressOut, execOpts...)

	presOpts := orchestration.PresentationOptions{
		N:       a.Config.N,
		RawN:    a.Config.RawN,
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	var exitCode int
	if a.Config.Quiet {
		qp := quietPresenter{out: out, errOut: a.ErrWriter}
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, qp, qp, io.Discard)
	} else {
		presenter := cli.CLIResultPresenter{}
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
	}

	if exitCode == apperrors.ExitSuccess {
		if best := findBestResult(results); best != nil {
			if err := a.saveResultIfNeeded(*best, presOpts); err != nil {
				return apperrors.ExitErrorGeneric
			}
		}
	}
	return exitCode
}

// quietPresenter prints only the retained primes to out and sends failures
// to errOut. The comparison table and the status lines are dropped.
type quietPresenter struct {
	out    io.Writer
	errOut io.Writer
}

func (quietPresenter) PresentComparisonTable([]orchestration.EnumerationResult, io.Writer) {}

func (p quietPresenter) PresentResult(result orchestration.EnumerationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	cli.DisplayQuietResult(p.out, result.Primes)
}

func (p quietPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return cli.CLIResultPresenter{}.HandleError(err, duration, p.errOut)
}

// validateMemoryBudget checks that every selected strategy fits within the
// configured limit.
func (a *Application) validateMemoryBudget() int {
	limit, err := primes.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Invalid --memory-limit: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	for _, s := range a.Config.Strategies() {
		est := primes.EstimateMemory(a.Config.N, s)
		if est.TotalBytes > limit {
			err := apperrors.MemoryError{Requested: est.TotalBytes, Limit: limit}
			a.Logger.Error("memory budget exceeded", err,
				logging.String("strategy", s.String()),
				logging.Int("n", a.Config.N),
				logging.Uint64("requested", est.TotalBytes),
				logging.Uint64("limit", limit),
			)
			fmt.Fprintf(a.ErrWriter, "%sEstimated memory %s for %s exceeds limit %s.%s\n",
				ui.ColorRed(), format.FormatBytes(est.TotalBytes), s.Description(), a.Config.MemoryLimit, ui.ColorReset())
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.ExitSuccess
}

// findBestResult returns the fastest successful result, or nil.
func findBestResult(results []orchestration.EnumerationResult) *orchestration.EnumerationResult {
	var best *orchestration.EnumerationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if best == nil || results[i].Duration < best.Duration {
			best = &results[i]
		}
	}
	return best
}

func (a *Application) saveResultIfNeeded(res orchestration.EnumerationResult, opts orchestration.PresentationOptions) error {
	if a.Config.OutputFile == "" {
		return nil
	}
	cfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Format:     a.Config.OutputFormat,
		RunID:      a.RunID,
	}
	if err := cli.WriteResultToFile(res, opts, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError saving result: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return err
	}
	a.Logger.Info("result saved",
		logging.String("path", a.Config.OutputFile),
		logging.String("format", a.Config.OutputFormat),
		logging.Int("count", len(res.Primes)),
	)
	if !a.Config.Quiet {
		fmt.Fprintf(a.ErrWriter, "%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return nil
}
