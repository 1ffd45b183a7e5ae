package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"mcpi/internal/domain"
)

var (
	insideStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff00ff"))
	outsideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	axisStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type plotted struct {
	p domain.Point
	c domain.SampleCategory
}

// Canvas is an engine observer that remembers every classified sample of
// the current run so it can be drawn.
type Canvas struct {
	mu     sync.Mutex
	points []plotted
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas { return &Canvas{} }

func (c *Canvas) OnSample(p domain.Point, cat domain.SampleCategory) {
	c.mu.Lock()
	c.points = append(c.points, plotted{p, cat})
	c.mu.Unlock()
}

func (c *Canvas) OnStatisticsUpdated(domain.RunningStatistics) {}
func (c *Canvas) OnSnapshot(domain.SimulationState) {}
func (c *Canvas) OnFinished() {}

// Reset forgets all samples.
func (c *Canvas) Reset() {
	c.mu.Lock()
	c.points = nil
	c.mu.Unlock()
}

// Len reports how many samples are plotted.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.points)
}

// Render scales the domain onto a cols x rows character grid with axes
// through the center. The most recent sample wins when several share a cell.
func (c *Canvas) Render(size, cols, rows int) string {
	if size <= 0 || cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]domain.SampleCategory, rows)
	for i := range grid {
		grid[i] = make([]domain.SampleCategory, cols)
	}
	c.mu.Lock()
	for _, pt := range c.points {
		col := pt.p.X * cols / (size + 1)
		row := pt.p.Y * rows / (size + 1)
		if col >= 0 && col < cols && row >= 0 && row < rows {
			grid[row][col] = pt.c
		}
	}
	c.mu.Unlock()

	midCol, midRow := cols/2, rows/2
	var b strings.Builder
	for r, line := range grid {
		for col, cat := range line {
			switch {
			case cat == domain.Inside:
				b.WriteString(insideStyle.Render("●"))
			case cat == domain.Outside:
				b.WriteString(outsideStyle.Render("●"))
			case r == midRow && col == midCol:
				b.WriteString(axisStyle.Render("┼"))
			case r == midRow:
				b.WriteString(axisStyle.Render("─"))
			case col == midCol:
				b.WriteString(axisStyle.Render("│"))
			default:
				b.WriteByte(' ')
			}
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var _ domain.Observer = (*Canvas)(nil)
