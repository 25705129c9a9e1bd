// Package config parses command-line flags and environment variables into
// the application configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/primes"
)

const (
	// EnvPrefix is prepended to every environment variable override.
	EnvPrefix = "PRIMECALC_"
	// AlgoAll runs every strategy and compares the results.
	AlgoAll = "all"
	// DefaultTimeout bounds a single run of the calculate command.
	DefaultTimeout = 5 * time.Minute
	// DefaultLogLevel keeps the CLI silent unless something goes wrong.
	DefaultLogLevel = "warn"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the inclusive upper bound of the enumeration.
	N int
	// RawN is N exactly as supplied, used in output headers.
	RawN string
	// Algo is the canonical strategy name, or "all".
	Algo string
	// Timeout is the maximum duration of the calculate command.
	Timeout time.Duration
	// Quiet prints only the primes.
	Quiet bool
	// Verbose adds the prime count and largest prime to the output.
	Verbose bool
	// Details adds timing and memory statistics.
	Details bool
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// OutputFormat is the file format: text, json or yaml.
	OutputFormat string
	// MemoryLimit rejects runs whose estimated footprint exceeds it (e.g. "512M").
	MemoryLimit string
	// Metrics dumps Prometheus metrics after the run.
	Metrics bool
	// TUI launches the interactive dashboard.
	TUI bool
	// Interactive starts the REPL.
	Interactive bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Completion is the shell to generate a completion script for.
	Completion string
	// LogLevel is the zerolog level for diagnostics on stderr.
	LogLevel string
}

// Strategies returns the strategies selected by Algo, in declaration order.
func (c AppConfig) Strategies() []primes.Strategy {
	if c.Algo == AlgoAll {
		return slices.Clone(primes.Strategies)
	}
	if s, err := primes.ParseStrategy(c.Algo); err == nil {
		return []primes.Strategy{s}
	}
	return nil
}

// selectorFlags maps the single-letter selector flags to strategies.
var selectorFlags = []struct {
	name     string
	strategy primes.Strategy
	help     string
}{
	{"b", primes.BruteForce, "Calculate primes using the brute force algorithm"},
	{"B", primes.BetterBruteForce, "Calculate primes using a better brute force algorithm"},
	{"s", primes.Sieve, "Calculate primes using the Sieve of Eratosthenes"},
}

// ParseConfig parses the command-line arguments into an AppConfig.
// Priority is CLI flags > environment variables (PRIMECALC_*) > defaults.
//
// On an argument error the message and the usage text are written to
// errWriter and an apperrors.ArgumentError is returned. -h returns
// flag.ErrHelp after printing the usage text.
//
// Parameters:
//   - programName: The name used in the usage text.
//   - args: The arguments without the program name.
//   - errWriter: The writer for usage and error messages.
//   - availableAlgos: The registered strategy names.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp, or an ArgumentError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var config AppConfig
	selected := make([]bool, len(selectorFlags))

	fs.StringVar(&config.RawN, "n", "", "The upper limit of the primes you wish to find")
	fs.StringVar(&config.Algo, "algo", "", fmt.Sprintf("Algorithm to use: %s or %s", strings.Join(availableAlgos, ", "), AlgoAll))
	for i, sel := range selectorFlags {
		fs.BoolVar(&selected[i], sel.name, false, sel.help)
	}
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the primes, one per line")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show the prime count and the largest prime")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose")
	fs.BoolVar(&config.Details, "details", false, "Show timing and memory details")
	fs.BoolVar(&config.Details, "d", false, "Shorthand for --details")
	fs.StringVar(&config.OutputFile, "output", "", "Save the primes to a file")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output")
	fs.StringVar(&config.OutputFormat, "format", FormatText, "Output file format: text, json or yaml")
	fs.StringVar(&config.MemoryLimit, "memory-limit", "", "Reject runs estimated to exceed this size (e.g. 512M, 2G)")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print Prometheus metrics after the run")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive dashboard")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive prompt")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output")
	fs.StringVar(&config.Completion, "completion", "", "Generate a completion script: bash, zsh, fish or powershell")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewArgumentError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, usageError(fs, errWriter, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	applyEnvOverrides(&config, fs)

	if config.Completion != "" {
		return config, nil
	}

	if err := resolveAlgo(&config, selected, availableAlgos); err != nil {
		return AppConfig{}, usageError(fs, errWriter, err)
	}
	if err := resolveBound(&config); err != nil {
		return AppConfig{}, usageError(fs, errWriter, err)
	}
	if err := validate(config); err != nil {
		return AppConfig{}, usageError(fs, errWriter, err)
	}
	return config, nil
}

// resolveAlgo merges --algo and the selector flags into a canonical name.
func resolveAlgo(config *AppConfig, selected []bool, availableAlgos []string) error {
	var choices []string
	if config.Algo != "" {
		choices = append(choices, config.Algo)
	}
	for i, sel := range selectorFlags {
		if selected[i] {
			choices = append(choices, sel.strategy.String())
		}
	}

	switch {
	case len(choices) > 1:
		return fmt.Errorf("conflicting algorithm selections: %s", strings.Join(choices, ", "))
	case len(choices) == 0:
		if config.TUI || config.Interactive {
			config.Algo = AlgoAll
			return nil
		}
		return errors.New("no algorithm arguments specified")
	}

	if strings.EqualFold(choices[0], AlgoAll) {
		config.Algo = AlgoAll
		return nil
	}
	s, err := primes.ParseStrategy(choices[0])
	if err != nil || !slices.Contains(availableAlgos, s.String()) {
		return fmt.Errorf("unknown algorithm %q (available: %s, %s)", choices[0], strings.Join(availableAlgos, ", "), AlgoAll)
	}
	config.Algo = s.String()
	return nil
}

// resolveBound converts RawN into N. Only the shape of the argument is
// checked here; bounds such as 0 or 1 are left to the enumerator so they
// surface as InvalidBoundError.
func resolveBound(config *AppConfig) error {
	config.RawN = strings.TrimSpace(config.RawN)
	if config.RawN == "" {
		if config.Interactive {
			return nil
		}
		return errors.New("upper bound not specified")
	}
	for _, r := range config.RawN {
		if r < '0' || r > '9' {
			return errors.New("-n must be followed by a positive integer")
		}
	}
	n, err := strconv.Atoi(config.RawN)
	if err != nil {
		return fmt.Errorf("-n %s is out of range", config.RawN)
	}
	config.N = n
	return nil
}

// validate checks the option values that the flag package accepts but the
// application cannot use. Failures are reported as ValidationError.
func validate(config AppConfig) error {
	switch config.OutputFormat {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return apperrors.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown output format %q (accepted values: text, json, yaml)", config.OutputFormat),
		}
	}
	if config.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "--timeout must be positive"}
	}
	if config.MemoryLimit != "" {
		if _, err := primes.ParseMemoryLimit(config.MemoryLimit); err != nil {
			return apperrors.ValidationError{Field: "memory-limit", Message: fmt.Sprintf("invalid --memory-limit: %v", err)}
		}
	}
	if config.TUI && config.Interactive {
		return apperrors.ValidationError{Field: "tui", Message: "--tui and --interactive cannot be combined"}
	}
	return nil
}

// usageError prints the message between asterisks,
// followed by the usage text, and returns cause as an ArgumentError.
func usageError(fs *flag.FlagSet, errWriter io.Writer, cause error) error {
	err := apperrors.AsArgumentError(cause)
	fmt.Fprintf(errWriter, "*** %s ***\n", err)
	fs.Usage()
	return err
}
