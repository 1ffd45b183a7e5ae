package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpi/internal/domain"
	"mcpi/internal/engine"
	"mcpi/internal/rng"
)

type doneCall struct {
	state  domain.SimulationState
	status domain.RunStatus
}

type harness struct {
	m       Model
	calls   []doneCall
	bell    bytes.Buffer
	samples []domain.Point // samples of the current engine
}

func newHarness(t *testing.T, ticks int) *harness {
	t.Helper()
	// (100,100) is inside, (0,0) is outside for a 200 domain.
	return newSourceHarness(t, ticks, func() (domain.RandomSource, error) {
		return rng.NewSequence(100, 100, 100, 100, 0, 0), nil
	})
}

func newSourceHarness(t *testing.T, ticks int, source func() (domain.RandomSource, error)) *harness {
	t.Helper()
	h := &harness{}
	canvas := NewCanvas()
	n := 0
	h.m = New(Options{
		NewEngine: func() (*engine.Engine, error) {
			src, err := source()
			if err != nil {
				return nil, err
			}
			h.samples = nil
			return engine.New(
				engine.WithRandomSource(src),
				engine.WithObserver(engine.Observers(canvas, engine.ObserverFuncs{
					Sample: func(p domain.Point, _ domain.SampleCategory) { h.samples = append(h.samples, p) },
				})),
				engine.WithIDGenerator(func() string { n++; return "run-" + string(rune('0'+n)) }),
			)
		},
		Canvas:     canvas,
		DomainSize: 200,
		TotalTicks: ticks,
		Cols:       10,
		Rows:       5,
		Bell:       &h.bell,
		Done: func(s domain.SimulationState, st domain.RunStatus) error {
			h.calls = append(h.calls, doneCall{s, st})
			return nil
		},
	})
	return h
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	h.m = m
	return cmd
}

func (h *harness) tick(t *testing.T) tea.Cmd {
	return h.send(t, tickMsg{runID: h.m.State().RunID})
}

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestModel_RunsToCompletion(t *testing.T) {
	h := newHarness(t, 3)
	msg := h.m.Init()()
	require.IsType(t, startMsg{}, msg)
	require.NotNil(t, h.send(t, msg))
	assert.Equal(t, domain.PhaseRunning, h.m.State().Phase)

	assert.NotNil(t, h.tick(t))
	assert.NotNil(t, h.tick(t))
	assert.Nil(t, h.tick(t))

	s := h.m.State()
	assert.Equal(t, domain.PhaseFinished, s.Phase)
	assert.Equal(t, domain.RunningStatistics{Inside: 2, Outside: 1}, s.Statistics)
	require.Len(t, h.calls, 1)
	assert.Equal(t, domain.RunFinished, h.calls[0].status)
	assert.Equal(t, "\a", h.bell.String())

	view := h.m.View()
	assert.Contains(t, view, "remaining: 0  inside: 2  outside: 1")
	assert.Contains(t, view, "finished")

	// Late ticks are ignored.
	assert.Nil(t, h.tick(t))
	assert.Len(t, h.calls, 1)
}

func TestModel_StopKey(t *testing.T) {
	h := newHarness(t, 10)
	h.send(t, startMsg{})
	h.tick(t)

	assert.Nil(t, h.send(t, key("s")))
	require.Len(t, h.calls, 1)
	assert.Equal(t, domain.RunStopped, h.calls[0].status)
	assert.EqualValues(t, 1, h.calls[0].state.Statistics.Total())
	assert.Equal(t, 9, h.calls[0].state.RemainingTicks)
	assert.Contains(t, h.m.View(), "stopped")

	// The pending tick of the stopped run does nothing.
	assert.Nil(t, h.tick(t))
	// Stopping again is a no-op.
	h.send(t, key("s"))
	assert.Len(t, h.calls, 1)
}

func TestModel_RestartKeyStartsFreshRun(t *testing.T) {
	h := newHarness(t, 10)
	h.send(t, startMsg{})
	h.tick(t)
	h.tick(t)
	first := h.m.State().RunID

	require.NotNil(t, h.send(t, key("r")))
	s := h.m.State()
	assert.NotEqual(t, first, s.RunID)
	assert.Equal(t, domain.PhaseRunning, s.Phase)
	assert.Zero(t, s.Statistics.Total())
	assert.Zero(t, h.m.opts.Canvas.Len())

	require.Len(t, h.calls, 1)
	assert.Equal(t, first, h.calls[0].state.RunID)

	// A tick addressed to the replaced run is dropped.
	h.send(t, tickMsg{runID: first})
	assert.Zero(t, h.m.State().Statistics.Total())
}

func TestModel_QuitStopsActiveRun(t *testing.T) {
	h := newHarness(t, 10)
	h.send(t, startMsg{})
	cmd := h.send(t, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	require.Len(t, h.calls, 1)
	assert.Equal(t, domain.RunStopped, h.calls[0].status)
}

func TestModel_StartErrorIsShown(t *testing.T) {
	h := newHarness(t, 0)
	assert.Nil(t, h.send(t, startMsg{}))
	assert.ErrorIs(t, h.m.err, domain.ErrInvalidArgument)
	assert.Contains(t, h.m.View(), "error:")
}

func TestCanvas_Render(t *testing.T) {
	c := NewCanvas()
	c.OnSample(domain.Point{X: 0, Y: 0}, domain.Outside)
	c.OnSample(domain.Point{X: 100, Y: 100}, domain.Inside)

	out := c.Render(200, 4, 3)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 2, c.Len())
	assert.Contains(t, lines[0], "●")
	assert.Contains(t, lines[1], "●")
	assert.Contains(t, lines[2], "│")

	c.Reset()
	assert.NotContains(t, c.Render(200, 4, 3), "●")
	assert.Empty(t, c.Render(0, 4, 3))
}

func TestModel_RestartedSeededRunReplaysFromSeed(t *testing.T) {
	const ticks = 20
	seeded := func() (domain.RandomSource, error) { return rng.FromPhrase("replay") }
	h := newSourceHarness(t, ticks, seeded)

	h.send(t, startMsg{})
	for i := 0; i < ticks; i++ {
		h.tick(t)
	}
	require.Equal(t, domain.PhaseFinished, h.m.State().Phase)
	first := append([]domain.Point(nil), h.samples...)

	h.send(t, key("r"))
	for i := 0; i < ticks; i++ {
		h.tick(t)
	}
	require.Equal(t, domain.PhaseFinished, h.m.State().Phase)
	second := append([]domain.Point(nil), h.samples...)

	src, err := seeded()
	require.NoError(t, err)
	var replay []domain.Point
	eng, err := engine.New(
		engine.WithRandomSource(src),
		engine.WithObserver(engine.ObserverFuncs{
			Sample: func(p domain.Point, _ domain.SampleCategory) { replay = append(replay, p) },
		}),
	)
	require.NoError(t, err)
	require.NoError(t, eng.Start(200, ticks))
	for eng.Tick() {
	}

	require.Len(t, replay, ticks)
	assert.Equal(t, replay, first)
	assert.Equal(t, replay, second)
}

func TestModel_EngineFactoryErrorIsShown(t *testing.T) {
	h := newSourceHarness(t, 5, func() (domain.RandomSource, error) {
		return nil, errors.New("no entropy")
	})
	assert.Nil(t, h.send(t, startMsg{}))
	assert.ErrorContains(t, h.m.err, "no entropy")
	assert.Contains(t, h.m.View(), "error: no entropy")
}
