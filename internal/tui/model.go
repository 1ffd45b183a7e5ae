// Package tui renders a live simulation in the terminal with Bubble Tea.
//
// The model drives an engine with one tick per interval, plots each sample
// on a Canvas, and shows remaining ticks, counts and the running estimate.
// Keys: s stops the run, r restarts it, q quits.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcpi/internal/domain"
	"mcpi/internal/engine"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Options configures a Model.
type Options struct {
	// NewEngine builds the engine for each run. Every start, including a
	// restart, gets a fresh engine so a seeded run can be replayed from its
	// seed alone. The engine should report samples to Canvas.
	NewEngine  func() (*engine.Engine, error)
	Canvas     *Canvas
	DomainSize int
	TotalTicks int
	Interval   time.Duration
	// Cols and Rows size the plot; zero picks 40x20.
	Cols, Rows int
	// Done is called once per run that finishes or is stopped. Optional.
	Done func(domain.SimulationState, domain.RunStatus) error
	// Bell receives a BEL when a run finishes. Optional.
	Bell io.Writer
}

type startMsg struct{}

type tickMsg struct{ runID string }

// Model is the Bubble Tea model for the watch view.
type Model struct {
	opts   Options
	eng    *engine.Engine
	state  domain.SimulationState
	status string
	err    error
}

// New returns a model that starts a run as soon as the program starts.
func New(opts Options) Model {
	if opts.Canvas == nil {
		opts.Canvas = NewCanvas()
	}
	if opts.Cols <= 0 {
		opts.Cols = 40
	}
	if opts.Rows <= 0 {
		opts.Rows = 20
	}
	return Model{opts: opts}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return m.start()
	case tickMsg:
		return m.tick(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			m.stop()
			return m, nil
		case "r":
			m.stop()
			return m.start()
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) start() (tea.Model, tea.Cmd) {
	m.opts.Canvas.Reset()
	eng, err := m.opts.NewEngine()
	if err != nil {
		m.err = err
		return m, nil
	}
	if err := eng.Start(m.opts.DomainSize, m.opts.TotalTicks); err != nil {
		m.err = err
		return m, nil
	}
	m.eng = eng
	m.err = nil
	m.state = eng.Snapshot()
	m.status = "running"
	return m, m.next()
}

func (m Model) next() tea.Cmd {
	id := m.state.RunID
	return tea.Tick(m.opts.Interval, func(time.Time) tea.Msg { return tickMsg{runID: id} })
}

func (m Model) tick(msg tickMsg) (tea.Model, tea.Cmd) {
	// Ticks scheduled for a run that has since been stopped or replaced.
	if msg.runID != m.state.RunID || m.state.Phase != domain.PhaseRunning {
		return m, nil
	}
	m.eng.Tick()
	m.state = m.eng.Snapshot()
	if m.state.Phase != domain.PhaseFinished {
		return m, m.next()
	}
	m.status = "finished"
	m.done(domain.RunFinished)
	if m.opts.Bell != nil {
		fmt.Fprint(m.opts.Bell, "\a")
	}
	return m, nil
}

// stop ends an active run and reports it as stopped.
func (m *Model) stop() {
	if m.state.Phase != domain.PhaseRunning {
		return
	}
	m.state = m.eng.Snapshot()
	m.eng.Stop()
	m.status = "stopped"
	m.done(domain.RunStopped)
	m.state.Phase = domain.PhaseIdle
}

func (m *Model) done(status domain.RunStatus) {
	if m.opts.Done == nil {
		return
	}
	if err := m.opts.Done(m.state, status); err != nil {
		m.err = err
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Monte Carlo π"))
	b.WriteByte('\n')
	b.WriteString(boxStyle.Render(m.opts.Canvas.Render(m.opts.DomainSize, m.opts.Cols, m.opts.Rows)))
	b.WriteByte('\n')
	st := m.state.Statistics
	fmt.Fprintf(&b, "remaining: %d  inside: %d  outside: %d  π ≈ %.6f\n",
		m.state.RemainingTicks, st.Inside, st.Outside, st.PiEstimate())
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteByte('\n')
	}
	b.WriteString(statusStyle.Render(m.status + "  ·  s stop  r restart  q quit"))
	b.WriteByte('\n')
	return b.String()
}

// State returns the latest snapshot the model has seen.
func (m Model) State() domain.SimulationState { return m.state }
