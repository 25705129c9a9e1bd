// Package app wires configuration, logging, metrics and the presentation
// layers into the primecalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/agbru/primecalc/internal/cli"
	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/primes"
	"github.com/agbru/primecalc/internal/tui"
	"github.com/agbru/primecalc/internal/ui"
)

// Application represents the primecalc application instance.
type Application struct {
	Config    config.AppConfig
	Registry  primes.EnumeratorRegistry
	ErrWriter io.Writer
	// RunID tags log entries and output files of this invocation.
	RunID   string
	Logger  logging.Logger
	Metrics *metrics.Metrics
	// In is read by the REPL; nil means os.Stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom EnumeratorRegistry for the application.
func WithRegistry(r primes.EnumeratorRegistry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithInput sets the reader used by the interactive prompt.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = primes.NewDefaultRegistry()
	}

	programName := cli.ProgramName
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	app.RunID = uuid.NewString()
	app.Logger = logging.NewConsoleLogger(errWriter, cfg.LogLevel, app.RunID)
	if cfg.Metrics {
		app.Metrics = metrics.NewMetrics()
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	a.Logger.Debug("starting",
		logging.String("algo", a.Config.Algo),
		logging.Int("n", a.Config.N),
		logging.String("version", Version),
	)

	var code int
	switch {
	case a.Config.Interactive:
		code = a.runREPL(ctx, out)
	case a.Config.TUI:
		code = a.runTUI(ctx)
	default:
		code = a.runCalculate(ctx, out)
	}

	a.dumpMetrics()
	return code
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Registry.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive prompt.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	algo := a.Config.Algo
	if algo == config.AlgoAll {
		algo = ""
	}
	repl := cli.NewREPL(a.Registry, cli.REPLConfig{
		DefaultAlgo: algo,
		Timeout:     a.Config.Timeout,
		Verbose:     a.Config.Verbose,
		Logger:      a.Logger,
		Metrics:     a.Metrics,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	enumerators := orchestration.SelectEnumerators(a.Config.Algo, a.Registry)
	return tui.Run(ctx, enumerators, tui.Options{
		N:       a.Config.N,
		RawN:    a.Config.RawN,
		Timeout: a.Config.Timeout,
		Version: Version,
		Logger:  a.Logger,
		Metrics: a.Metrics,
	})
}

// dumpMetrics prints the Prometheus registry to ErrWriter when --metrics is
// set, keeping stdout limited to the enumeration output.
func (a *Application) dumpMetrics() {
	if a.Metrics == nil {
		return
	}
	fmt.Fprintln(a.ErrWriter)
	if err := a.Metrics.WriteText(a.ErrWriter); err != nil {
		a.Logger.Error("writing metrics failed", err)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
