package orchestration

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/primes"
)

// mockResultPresenter records calls instead of printing.
type mockResultPresenter struct {
	mu          sync.Mutex
	tableCalls  int
	presented   []EnumerationResult
	lastOptions PresentationOptions
}

func (m *mockResultPresenter) PresentComparisonTable(results []EnumerationResult, out io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tableCalls++
}

func (m *mockResultPresenter) PresentResult(result EnumerationResult, opts PresentationOptions, out io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presented = append(m.presented, result)
	m.lastOptions = opts
}

// mockErrorHandler maps every error through apperrors.ExitCodeFor.
type mockErrorHandler struct {
	handled []error
}

func (m *mockErrorHandler) HandleError(err error, duration time.Duration, out io.Writer) int {
	m.handled = append(m.handled, err)
	return apperrors.ExitCodeFor(err)
}

// mockEnumerator is a primes.Enumerator driven by a function.
type mockEnumerator struct {
	name          string
	strategy      primes.Strategy
	enumerateFunc func(n int) ([]int, error)
}

func (m *mockEnumerator) Name() string {
	if m.name == "" {
		return "Mock"
	}
	return m.name
}

func (m *mockEnumerator) Strategy() primes.Strategy {
	if m.strategy == 0 {
		return primes.Sieve
	}
	return m.strategy
}

func (m *mockEnumerator) Enumerate(n int) ([]int, error) {
	if m.enumerateFunc != nil {
		return m.enumerateFunc(n)
	}
	return []int{2, 3, 5, 7}, nil
}

// TestExecuteEnumerations verifies that the orchestrator runs enumerators
// and keeps their results in order.
func TestExecuteEnumerations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		enumerators []primes.Enumerator
		expectedLen int
		expectError bool
	}{
		{
			name:        "Single success",
			enumerators: []primes.Enumerator{&mockEnumerator{}},
			expectedLen: 1,
		},
		{
			name: "Single failure",
			enumerators: []primes.Enumerator{&mockEnumerator{
				enumerateFunc: func(n int) ([]int, error) { return nil, errors.New("mock error") },
			}},
			expectedLen: 1,
			expectError: true,
		},
		{
			name: "Real strategies",
			enumerators: []primes.Enumerator{
				primes.NewEnumerator(primes.BruteForce),
				primes.NewEnumerator(primes.BetterBruteForce),
				primes.NewEnumerator(primes.Sieve),
			},
			expectedLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteEnumerations(context.Background(), tt.enumerators, 10, NullProgressReporter{}, io.Discard)
			require.Len(t, results, tt.expectedLen)
			for i, res := range results {
				assert.Equal(t, tt.enumerators[i].Name(), res.Name)
				if tt.expectError {
					assert.Error(t, res.Err)
					assert.Nil(t, res.Primes)
				} else {
					assert.NoError(t, res.Err)
					assert.Equal(t, []int{2, 3, 5, 7}, res.Primes)
				}
			}
		})
	}
}

func TestExecuteEnumerations_WrapsErrors(t *testing.T) {
	t.Parallel()
	results := ExecuteEnumerations(context.Background(),
		[]primes.Enumerator{primes.NewEnumerator(primes.Sieve)}, 1, nil, io.Discard)

	require.Len(t, results, 1)
	var enumErr apperrors.EnumerationError
	require.ErrorAs(t, results[0].Err, &enumErr)
	assert.Equal(t, "sieve", enumErr.Strategy)
	assert.True(t, primes.IsInvalidBound(results[0].Err))
	assert.Equal(t, apperrors.ExitErrorGeneric, apperrors.ExitCodeFor(results[0].Err))
}

func TestExecuteEnumerations_ContextAlreadyCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	results := ExecuteEnumerations(ctx, []primes.Enumerator{&mockEnumerator{
		enumerateFunc: func(n int) ([]int, error) { called = true; return nil, nil },
	}}, 10, NullProgressReporter{}, io.Discard)

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.False(t, called, "enumerator must not run on a canceled context")
}

func TestExecuteEnumerations_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	results := ExecuteEnumerations(ctx, []primes.Enumerator{&mockEnumerator{
		strategy:      primes.BruteForce,
		enumerateFunc: func(n int) ([]int, error) { <-release; return []int{2}, nil },
	}}, 10, NullProgressReporter{}, io.Discard)

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	assert.Equal(t, apperrors.ExitErrorTimeout, apperrors.ExitCodeFor(results[0].Err))

	var timeoutErr apperrors.TimeoutError
	require.ErrorAs(t, results[0].Err, &timeoutErr)
	assert.Equal(t, "brute", timeoutErr.Operation)
	assert.GreaterOrEqual(t, timeoutErr.Limit, time.Duration(0))
	assert.LessOrEqual(t, timeoutErr.Limit, 20*time.Millisecond)
}

func TestExecuteEnumerations_ExpiredDeadline(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	results := ExecuteEnumerations(ctx, []primes.Enumerator{&mockEnumerator{}}, 10, NullProgressReporter{}, io.Discard)

	require.Len(t, results, 1)
	var timeoutErr apperrors.TimeoutError
	require.ErrorAs(t, results[0].Err, &timeoutErr)
	assert.Equal(t, "sieve", timeoutErr.Operation)
	assert.Equal(t, time.Duration(0), timeoutErr.Limit)
}

func TestExecuteEnumerations_ProgressLifecycle(t *testing.T) {
	t.Parallel()
	var updates []ProgressUpdate
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, num int, out io.Writer) {
		defer wg.Done()
		for u := range ch {
			updates = append(updates, u)
		}
	})

	enumerators := []primes.Enumerator{
		primes.NewEnumerator(primes.BruteForce),
		primes.NewEnumerator(primes.Sieve),
	}
	ExecuteEnumerations(context.Background(), enumerators, 30, reporter, io.Discard)

	require.Len(t, updates, 4)
	tracker := NewProgressTracker(len(enumerators))
	for _, u := range updates {
		tracker.Update(u)
	}
	assert.Equal(t, 2, tracker.Finished())
	assert.Equal(t, 0, tracker.Failed())
	for _, u := range updates {
		if u.State == StateFinished {
			assert.Equal(t, 10, u.Count)
		}
	}
}

func TestExecuteEnumerations_RecordsMetrics(t *testing.T) {
	t.Parallel()
	m := metrics.NewMetrics()
	ExecuteEnumerations(context.Background(),
		[]primes.Enumerator{primes.NewEnumerator(primes.Sieve), primes.NewEnumerator(primes.BruteForce)},
		20, NullProgressReporter{}, io.Discard, WithMetrics(m))

	var sb strings.Builder
	require.NoError(t, m.WriteText(&sb))
	assert.Contains(t, sb.String(), `primecalc_primes_found_total{strategy="sieve"} 8`)
	assert.Contains(t, sb.String(), `primecalc_primes_found_total{strategy="brute"} 8`)
}

// TestAnalyzeComparisonResults verifies the logic for comparing results from
// multiple strategies. It checks consistent results, failures and mismatches.
func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []EnumerationResult
		expectedStatus int
		expectTable    bool
		expectPresent  bool
	}{
		{
			name: "All success",
			results: []EnumerationResult{
				{Name: "A", Primes: []int{2, 3}, Duration: time.Millisecond},
				{Name: "B", Primes: []int{2, 3}, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
			expectTable:    true,
			expectPresent:  true,
		},
		{
			name: "Mismatch",
			results: []EnumerationResult{
				{Name: "A", Primes: []int{2, 3}, Duration: time.Millisecond},
				{Name: "B", Primes: []int{2, 3, 4}, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
			expectTable:    true,
		},
		{
			name: "All failure",
			results: []EnumerationResult{
				{Name: "A", Duration: time.Millisecond, Err: errors.New("fail")},
				{Name: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
			expectTable:    true,
		},
		{
			name: "Mixed success/failure",
			results: []EnumerationResult{
				{Name: "A", Primes: []int{2}, Duration: time.Millisecond},
				{Name: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitSuccess,
			expectTable:    true,
			expectPresent:  true,
		},
		{
			name: "Single success skips table",
			results: []EnumerationResult{
				{Name: "A", Primes: []int{2}, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
			expectPresent:  true,
		},
		{
			name: "Single invalid bound",
			results: []EnumerationResult{
				{Name: "A", Err: primes.InvalidBoundError{Value: "1"}},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Single timeout",
			results: []EnumerationResult{
				{Name: "A", Err: context.DeadlineExceeded},
			},
			expectedStatus: apperrors.ExitErrorTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &mockResultPresenter{}
			status := AnalyzeComparisonResults(tt.results, PresentationOptions{N: 10}, presenter, &mockErrorHandler{}, io.Discard)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectTable, presenter.tableCalls == 1)
			assert.Equal(t, tt.expectPresent, len(presenter.presented) == 1)
		})
	}
}

func TestAnalyzeComparisonResults_PresentsFastest(t *testing.T) {
	t.Parallel()
	results := []EnumerationResult{
		{Name: "slow", Primes: []int{2, 3}, Duration: 3 * time.Millisecond},
		{Name: "failed", Err: errors.New("boom"), Duration: time.Microsecond},
		{Name: "fast", Primes: []int{2, 3}, Duration: time.Millisecond},
	}
	presenter := &mockResultPresenter{}
	var out strings.Builder
	status := AnalyzeComparisonResults(results, PresentationOptions{N: 3}, presenter, &mockErrorHandler{}, &out)

	assert.Equal(t, apperrors.ExitSuccess, status)
	require.Len(t, presenter.presented, 1)
	assert.Equal(t, "fast", presenter.presented[0].Name)
	assert.Equal(t, []string{"fast", "slow", "failed"}, []string{results[0].Name, results[1].Name, results[2].Name})
	assert.Contains(t, out.String(), "Global Status: Success")
}

func TestAnalyzeComparisonResults_Empty(t *testing.T) {
	t.Parallel()
	status := AnalyzeComparisonResults(nil, PresentationOptions{}, &mockResultPresenter{}, &mockErrorHandler{}, io.Discard)
	assert.Equal(t, apperrors.ExitErrorGeneric, status)
}

func TestPresentationOptions_Bound(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "007", PresentationOptions{N: 7, RawN: "007"}.Bound())
	assert.Equal(t, "7", PresentationOptions{N: 7}.Bound())
}
