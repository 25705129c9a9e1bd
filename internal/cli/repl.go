// Package cli provides the command-line presentation layer: result and
// comparison output, the progress spinner, shell completion and the REPL
// (Read-Eval-Print Loop) for interactive enumerations.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/primes"
	"github.com/agbru/primecalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the default strategy for calc.
	DefaultAlgo string
	// Timeout is the maximum duration for each command.
	Timeout time.Duration
	// Verbose shows the count and largest prime after each result.
	Verbose bool
	// Logger receives per-enumeration diagnostics. Nil disables logging.
	Logger logging.Logger
	// Metrics records every enumeration when non-nil.
	Metrics *metrics.Metrics
}

// REPL represents an interactive prime enumeration session.
type REPL struct {
	config      REPLConfig
	registry    primes.EnumeratorRegistry
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: The available enumerators.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry primes.EnumeratorRegistry, config REPLConfig) *REPL {
	currentAlgo := primes.Sieve.String()
	if e, err := registry.Get(config.DefaultAlgo); err == nil {
		currentAlgo = e.Strategy().String()
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &REPL{
		config:      config,
		registry:    registry,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// CurrentAlgo returns the canonical name of the strategy used by calc.
func (r *REPL) CurrentAlgo() string {
	return r.currentAlgo
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits, ctx is canceled or EOF is reached.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"primes> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if input = strings.TrimSpace(input); input != "" && !r.processCommand(ctx, input) {
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
			} else {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sPrime Enumerator - Interactive Mode%s                  %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scalc <n>%s      - List the primes up to n with the current strategy\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s   - Change strategy (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.registry.List(), ", "))
	fmt.Fprintf(r.out, "  %scompare <n>%s   - Compare all strategies up to n\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s          - List available strategies\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s       - Toggle count and largest prime display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := parts[0]
	args := parts[1:]

	switch strings.ToLower(cmd) {
	case "calc", "c":
		r.cmdCalc(ctx, args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(ctx, args)
	case "list", "ls":
		r.cmdList()
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Verbose display: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Verbose), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if cmd[0] >= '0' && cmd[0] <= '9' {
			r.cmdCalc(ctx, parts[:1])
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

// parseBound reads the bound argument of calc and compare, printing the
// invalid-bound message on failure.
func (r *REPL) parseBound(usage string, args []string) (int, string, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return 0, "", false
	}
	n, err := primes.ParseBound(args[0])
	if err != nil {
		apperrors.HandleEnumerationError(err, 0, r.out, CLIColorProvider{})
		return 0, "", false
	}
	return n, args[0], true
}

// cmdCalc handles the "calc" command.
func (r *REPL) cmdCalc(ctx context.Context, args []string) {
	n, raw, ok := r.parseBound("calc <n>", args)
	if !ok {
		return
	}
	e, err := r.registry.Get(r.currentAlgo)
	if err != nil {
		fmt.Fprintf(r.out, "%sStrategy not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}
	r.run(ctx, []primes.Enumerator{e}, n, raw)
}

// cmdCompare handles the "compare" command.
func (r *REPL) cmdCompare(ctx context.Context, args []string) {
	n, raw, ok := r.parseBound("compare <n>", args)
	if !ok {
		return
	}
	r.run(ctx, orchestration.SelectEnumerators(orchestration.AlgoAll, r.registry), n, raw)
}

// run executes enumerators through the orchestrator and reports the outcome.
func (r *REPL) run(ctx context.Context, enumerators []primes.Enumerator, n int, raw string) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	var opts []orchestration.ExecOption
	if r.config.Logger != nil {
		opts = append(opts, orchestration.WithLogger(r.config.Logger))
	}
	if r.config.Metrics != nil {
		opts = append(opts, orchestration.WithMetrics(r.config.Metrics))
	}

	results := orchestration.ExecuteEnumerations(ctx, enumerators, n, CLIProgressReporter{}, r.out, opts...)
	presentation := orchestration.PresentationOptions{N: n, RawN: raw, Verbose: r.config.Verbose}
	presenter := CLIResultPresenter{}
	orchestration.AnalyzeComparisonResults(results, presentation, presenter, presenter, r.out)
	fmt.Fprintln(r.out)
}

// cmdAlgo handles the "algo" command.
func (r *REPL) cmdAlgo(args []string) {
	available := strings.Join(r.registry.List(), ", ")
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", available)
		return
	}

	e, err := r.registry.Get(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", available)
		return
	}

	r.currentAlgo = e.Strategy().String()
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), e.Name(), ui.ColorReset())
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.registry.List() {
		e, err := r.registry.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-8s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), e.Name())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:  %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:   %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Verbose:   %s%s%s\n", ui.ColorCyan(), onOff(r.config.Verbose), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
