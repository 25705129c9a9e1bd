// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatHeader].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/ui"
)

// Output file formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// OutputConfig holds configuration for result file output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Format is one of FormatText, FormatJSON or FormatYAML.
	Format string
	// RunID identifies the run in the file metadata.
	RunID string
}

// FileReport is the document written by WriteResultToFile in the json and
// yaml formats.
type FileReport struct {
	RunID     string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Generated time.Time `json:"generated" yaml:"generated"`
	Strategy  string    `json:"strategy" yaml:"strategy"`
	Method    string    `json:"method" yaml:"method"`
	Bound     int       `json:"bound" yaml:"bound"`
	Count     int       `json:"count" yaml:"count"`
	Largest   int       `json:"largest,omitempty" yaml:"largest,omitempty"`
	Duration  string    `json:"duration" yaml:"duration"`
	Primes    []int     `json:"primes" yaml:"primes,flow"`
}

// FormatHeader returns the line printed before the primes.
func FormatHeader(bound, method string) string {
	return fmt.Sprintf("The primes between 1 and %s using the %s method are:", bound, method)
}

// DisplayQuietResult outputs the primes only, one per line.
func DisplayQuietResult(out io.Writer, primes []int) {
	w := bufio.NewWriter(out)
	writePrimes(w, primes)
	w.Flush()
}

// writePrimes writes one prime per line.
func writePrimes(w *bufio.Writer, primes []int) {
	var buf [20]byte
	for _, p := range primes {
		w.Write(strconv.AppendInt(buf[:0], int64(p), 10))
		w.WriteByte('\n')
	}
}

// DisplayResult prints the header followed by one prime per line. Verbose
// mode appends the count and the largest prime; details mode appends the
// duration and the memory statistics of the run.
//
// Parameters:
//   - result: The successful enumeration result.
//   - opts: The presentation options.
//   - out: The output writer.
func DisplayResult(result orchestration.EnumerationResult, opts orchestration.PresentationOptions, out io.Writer) {
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, FormatHeader(opts.Bound(), result.Strategy.Description()))
	writePrimes(w, result.Primes)

	if opts.Verbose || opts.Details {
		fmt.Fprintf(w, "\n%sPrimes found:%s %s%s%s\n",
			ui.ColorBold(), ui.ColorReset(), ui.ColorGreen(), format.FormatInt(len(result.Primes)), ui.ColorReset())
		if n := len(result.Primes); n > 0 {
			fmt.Fprintf(w, "%sLargest prime:%s %s%s%s\n",
				ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), format.FormatInt(result.Primes[n-1]), ui.ColorReset())
		}
	}
	if opts.Details {
		fmt.Fprintf(w, "%sStrategy:%s %s\n", ui.ColorBold(), ui.ColorReset(), result.Name)
		fmt.Fprintf(w, "%sEnumeration time:%s %s%s%s\n",
			ui.ColorBold(), ui.ColorReset(), ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
		w.Flush()
		DisplayMemoryStats(result.Memory, out)
		return
	}
	w.Flush()
}

// WriteResultToFile writes an enumeration result to a file.
//
// Parameters:
//   - result: The successful enumeration result.
//   - opts: The presentation options (bound spelling).
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result orchestration.EnumerationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory %s", dir)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	if err := encodeResult(file, result, opts, config); err != nil {
		return apperrors.WrapError(err, "failed to write output file")
	}
	return file.Close()
}

// encodeResult renders result in config.Format.
func encodeResult(w io.Writer, result orchestration.EnumerationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	report := FileReport{
		RunID:     config.RunID,
		Generated: time.Now().UTC().Truncate(time.Second),
		Strategy:  result.Strategy.String(),
		Method:    result.Strategy.Description(),
		Bound:     opts.N,
		Count:     len(result.Primes),
		Duration:  result.Duration.String(),
		Primes:    result.Primes,
	}
	if report.Primes == nil {
		report.Primes = []int{}
	}
	if n := len(result.Primes); n > 0 {
		report.Largest = result.Primes[n-1]
	}

	switch config.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		bw := bufio.NewWriter(w)
		fmt.Fprintf(bw, "# Prime Enumeration Result\n")
		if report.RunID != "" {
			fmt.Fprintf(bw, "# Run: %s\n", report.RunID)
		}
		fmt.Fprintf(bw, "# Generated: %s\n", report.Generated.Format(time.RFC3339))
		fmt.Fprintf(bw, "# Strategy: %s\n", report.Strategy)
		fmt.Fprintf(bw, "# Duration: %s\n", report.Duration)
		fmt.Fprintf(bw, "# Count: %d\n", report.Count)
		fmt.Fprintf(bw, "\n%s\n", FormatHeader(opts.Bound(), report.Method))
		writePrimes(bw, result.Primes)
		return bw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", config.Format)
	}
}
