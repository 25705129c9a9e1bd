package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/primecalc/internal/config"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/primes"
	"github.com/agbru/primecalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the upper bound, timeout, environment details and the memory
// estimate of each selected strategy.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Enumerating primes up to %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatInt(cfg.N), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	for _, s := range cfg.Strategies() {
		est := primes.EstimateMemory(cfg.N, s)
		fmt.Fprintf(out, "Estimated memory (%s): %s%s%s.\n",
			s, ui.ColorCyan(), format.FormatBytes(est.TotalBytes), ui.ColorReset())
	}
}

// PrintExecutionMode displays the execution mode (single strategy vs comparison).
//
// Parameters:
//   - enumerators: The enumerators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(enumerators []primes.Enumerator, out io.Writer) {
	var modeDesc string
	switch len(enumerators) {
	case 0:
		modeDesc = "No strategy selected"
	case 1:
		modeDesc = fmt.Sprintf("Single enumeration with the %s%s%s method",
			ui.ColorGreen(), enumerators[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d strategies", len(enumerators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
