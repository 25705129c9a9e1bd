// Package tui implements the interactive dashboard: one row per strategy
// with its live status, the outcome of the run, and a footer with system
// resource sparklines.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/primes"
	"github.com/agbru/primecalc/internal/sysmon"
)

// tickInterval is the refresh period of the elapsed timer and the footer.
const tickInterval = 500 * time.Millisecond

// Options configures a dashboard session.
type Options struct {
	// N is the inclusive upper bound.
	N int
	// RawN is the bound as typed, shown in the header.
	RawN string
	// Timeout bounds each run; a rerun starts a fresh timeout.
	Timeout time.Duration
	Version string
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// rowState is the lifecycle stage of one strategy row.
type rowState int

const (
	rowPending rowState = iota
	rowRunning
	rowDone
	rowFailed
)

type strategyRow struct {
	name    string
	state   rowState
	elapsed time.Duration
	count   int
	err     error
}

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx         context.Context
	cancel      context.CancelFunc
	enumerators []primes.Enumerator
	generation  uint64
	running     bool
	exitCode    int
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	keymap  KeyMap
	help    help.Model
	spinner spinner.Model

	rows    []strategyRow
	outcome []string

	sampler    *sysmon.Sampler
	sys        sysmon.Stats
	cpuHistory *RingBuffer
	memHistory *RingBuffer

	ExecutionState

	width     int
	parentCtx context.Context
	opts      Options
	ref       *programRef
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, enumerators []primes.Enumerator, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	bound := opts.RawN
	if bound == "" {
		bound = format.FormatInt(opts.N)
	}

	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusRunningStyle))

	m := Model{
		header:     NewHeaderModel(opts.Version, bound),
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		sampler:    sysmon.NewSampler(),
		cpuHistory: NewRingBuffer(historySize),
		memHistory: NewRingBuffer(historySize),
		ExecutionState: ExecutionState{
			enumerators: enumerators,
			exitCode:    apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		opts:      opts,
		ref:       &programRef{},
	}
	m.resetRun()
	return m
}

// resetRun prepares the rows and the context of a new run.
func (m *Model) resetRun() {
	m.rows = make([]strategyRow, len(m.enumerators))
	for i, e := range m.enumerators {
		m.rows[i] = strategyRow{name: e.Name()}
	}
	m.outcome = nil
	m.running = true
	m.exitCode = apperrors.ExitSuccess
	m.ctx, m.cancel = context.WithTimeout(m.parentCtx, m.opts.Timeout)
	m.header.Reset()
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		sampleSysStatsCmd(m.parentCtx, m.sampler),
		startRunCmd(m.ref, m.ctx, m.enumerators, m.opts, m.generation),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		return m, tea.Batch(tickCmd(), sampleSysStatsCmd(m.parentCtx, m.sampler))

	case SysStatsMsg:
		m.sys = sysmon.Stats(msg)
		m.cpuHistory.Push(msg.CPUPercent)
		m.memHistory.Push(msg.MemPercent)
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation {
			m.applyUpdate(msg.Update)
		}
		return m, nil

	case ProgressDoneMsg, ComparisonResultsMsg:
		return m, nil

	case FinalResultMsg:
		if msg.Generation == m.generation {
			m.outcome = append(m.outcome, describeResult(msg.Result, msg.Bound))
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			var b strings.Builder
			apperrors.HandleEnumerationError(msg.Err, msg.Duration, &b, nil)
			m.outcome = append(m.outcome, strings.TrimSpace(b.String()))
		}
		return m, nil

	case RunCompleteMsg:
		if msg.Generation == m.generation {
			m.running = false
			m.exitCode = msg.ExitCode
			m.outcome = append(msg.Status, m.outcome...)
			m.header.SetDone()
		}
		return m, nil

	case ContextCancelledMsg:
		m.cancel()
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.running {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Rerun):
		if m.running {
			return m, nil
		}
		m.cancel()
		m.generation++
		m.resetRun()
		return m, startRunCmd(m.ref, m.ctx, m.enumerators, m.opts, m.generation)

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// applyUpdate records a lifecycle change in the matching row.
func (m *Model) applyUpdate(u orchestration.ProgressUpdate) {
	if u.Index < 0 || u.Index >= len(m.rows) {
		return
	}
	row := &m.rows[u.Index]
	switch {
	case u.State == orchestration.StateStarted:
		row.state = rowRunning
	case u.Err != nil:
		row.state, row.elapsed, row.err = rowFailed, u.Elapsed, u.Err
	default:
		row.state, row.elapsed, row.count = rowDone, u.Elapsed, u.Count
	}
}

// describeResult summarizes the retained result in one line.
func describeResult(r orchestration.EnumerationResult, bound string) string {
	line := fmt.Sprintf("%s primes between 1 and %s using the %s method",
		format.FormatInt(len(r.Primes)), bound, r.Strategy.Description())
	if n := len(r.Primes); n > 0 {
		line += fmt.Sprintf(" (largest %s)", format.FormatInt(r.Primes[n-1]))
	}
	return line
}

// View renders the dashboard.
func (m Model) View() string {
	sections := []string{
		m.header.View(),
		panelStyle.Render(m.rowsView()),
	}
	for _, line := range m.outcome {
		sections = append(sections, summaryStyle.Render(" "+line))
	}
	sections = append(sections, m.footerView(), " "+m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) rowsView() string {
	nameWidth := 0
	for _, r := range m.rows {
		nameWidth = max(nameWidth, len(r.name))
	}

	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		name := rowNameStyle.Render(r.name + strings.Repeat(" ", nameWidth-len(r.name)))
		var status string
		switch r.state {
		case rowPending:
			status = statusPendingStyle.Render("· waiting")
		case rowRunning:
			status = m.spinner.View() + statusRunningStyle.Render(" running")
		case rowDone:
			status = statusDoneStyle.Render("✓ ") +
				metricValueStyle.Render(format.FormatInt(r.count)) + metricLabelStyle.Render(" primes in ") +
				metricValueStyle.Render(format.FormatExecutionDuration(r.elapsed))
		case rowFailed:
			status = statusErrorStyle.Render(fmt.Sprintf("✗ %v", r.err))
		}
		lines[i] = name + "  " + status
	}
	return strings.Join(lines, "\n")
}

func (m Model) footerView() string {
	return " " + metricLabelStyle.Render("CPU ") + cpuSparklineStyle.Render(RenderSparkline(m.cpuHistory.Slice(), historySize)) +
		metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", m.sys.CPUPercent)) +
		metricLabelStyle.Render("   MEM ") + memSparklineStyle.Render(RenderSparkline(m.memHistory.Slice(), historySize)) +
		metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", m.sys.MemPercent)) +
		metricLabelStyle.Render("   RSS ") + metricValueStyle.Render(format.FormatBytes(m.sys.ProcessRSS))
}

// Run launches the TUI dashboard and blocks until the user quits.
//
// Parameters:
//   - ctx: The parent context; canceling it closes the dashboard.
//   - enumerators: The strategies to run.
//   - opts: The session options.
//
// Returns:
//   - int: The exit code of the last run, or ExitErrorCanceled if the user
//     quit while a run was in progress.
func Run(ctx context.Context, enumerators []primes.Enumerator, opts Options) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, enumerators, opts)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		if err == nil || m.exitCode != apperrors.ExitSuccess {
			return m.exitCode
		}
	}
	if err != nil {
		return apperrors.ExitCodeFor(ctx.Err())
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that launches the orchestration.
func startRunCmd(ref *programRef, ctx context.Context, enumerators []primes.Enumerator, opts Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		var execOpts []orchestration.ExecOption
		if opts.Logger != nil {
			execOpts = append(execOpts, orchestration.WithLogger(opts.Logger))
		}
		if opts.Metrics != nil {
			execOpts = append(execOpts, orchestration.WithMetrics(opts.Metrics))
		}

		results := orchestration.ExecuteEnumerations(ctx, enumerators, opts.N, reporter, io.Discard, execOpts...)
		var status strings.Builder
		presOpts := orchestration.PresentationOptions{N: opts.N, RawN: opts.RawN}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, &status)

		return RunCompleteMsg{Generation: gen, ExitCode: exitCode, Status: nonEmptyLines(status.String())}
	}
}

// nonEmptyLines splits s into trimmed, non-empty lines.
func nonEmptyLines(s string) []string {
	var lines []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd samples system and process usage and returns a SysStatsMsg.
func sampleSysStatsCmd(ctx context.Context, sampler *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sampler.Sample(ctx))
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
