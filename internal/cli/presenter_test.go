package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/primes"
)

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	results := []orchestration.EnumerationResult{
		{Name: "Sieve of Eratosthenes", Primes: []int{2, 3, 5, 7}, Duration: 3 * time.Microsecond},
		{Name: "brute force", Primes: []int{2, 3, 5, 7}},
		{Name: `"better" brute force`, Err: errors.New("boom"), Duration: time.Millisecond},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{
		"--- Comparison Summary ---",
		"Strategy", "Duration", "Primes", "Status",
		"Sieve of Eratosthenes", "3µs", "✅ Success",
		"< 1µs",
		"❌ Failure (boom)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q, got:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Errorf("expected title, header and 3 rows, got %d lines", len(lines))
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{"Invalid bound", apperrors.EnumerationError{Strategy: "sieve", Cause: primes.InvalidBoundError{Value: "1"}},
			apperrors.ExitErrorGeneric, "1 is an invalid upper bound."},
		{"Timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Timeout"},
		{"Canceled", context.Canceled, apperrors.ExitErrorCanceled, "Canceled"},
		{"Other", errors.New("boom"), apperrors.ExitErrorGeneric, "unexpected error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := CLIResultPresenter{}.HandleError(tt.err, time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantText) {
				t.Errorf("output %q should contain %q", buf.String(), tt.wantText)
			}
		})
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemoryUsage{Allocated: 2048, Allocations: 1234, GCCycles: 2, PauseTotalNs: 1_500_000}, &buf)
	for _, want := range []string{"Memory Stats:", "Allocations:     1,234", "GC cycles:       2", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("memory stats should contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestCLIColorProvider_NoColor(t *testing.T) {
	t.Parallel()
	c := CLIColorProvider{}
	if c.Red() != "" || c.Yellow() != "" || c.Reset() != "" {
		t.Error("colors should be empty with the no-color theme")
	}
}
