//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/ui"
)

// SpinnerRefreshRate defines the animation frequency of the spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner while the enumerators run. Its suffix
// lists the enumerators still running, aggregated by an
// orchestration.ProgressTracker. When all enumerators have returned, the
// spinner is stopped and a one-line summary is printed.
//
// Parameters:
//   - wg: The wait group to signal on return.
//   - progressChan: The channel of lifecycle updates, closed by the orchestrator.
//   - numEnumerators: The number of enumerators being run.
//   - out: The writer for the spinner and summary.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numEnumerators int, out io.Writer) {
	defer wg.Done()
	tracker := orchestration.NewProgressTracker(numEnumerators)
	if tracker == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(" " + tracker.Summary())
	s.Start()

	for update := range progressChan {
		tracker.Update(update)
		s.UpdateSuffix(" " + tracker.Summary())
	}

	s.Stop()
	status := fmt.Sprintf("%s%d/%d strategies finished%s", ui.ColorGreen(), tracker.Finished(), tracker.Total(), ui.ColorReset())
	if failed := tracker.Failed(); failed > 0 {
		status += fmt.Sprintf(" %s(%d failed)%s", ui.ColorRed(), failed, ui.ColorReset())
	}
	fmt.Fprintln(out, status)
}
