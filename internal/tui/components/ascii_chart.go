package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/isoamt/internal/tui/tuistyles"
)

// DataSeries is one line on the chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots dollar amounts against evenly spaced x positions,
// such as projected AMT across fractions of the grant
type ASCIIChart struct {
	Title  string
	Series []*DataSeries
	Labels []string // x-axis labels, first and last are shown
	Width  int
	Height int
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{Title: title, Width: 60, Height: 10}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the chart
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.Height < 2 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n")
	}

	minVal, maxVal := c.bounds()
	content.WriteString(c.renderGrid(minVal, maxVal))
	if len(c.Series) > 1 {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}
	return content.String()
}

// bounds spans every point, always including zero
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

const yAxisWidth = 9

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	chartWidth := c.Width - yAxisWidth - 3
	if chartWidth < 2 {
		chartWidth = 2
	}

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	toXY := func(i, n int, v float64) (int, int) {
		x := 0
		if n > 1 {
			x = int(float64(i) / float64(n-1) * float64(chartWidth-1))
		}
		y := c.Height - 1 - int(math.Round((v-minVal)/(maxVal-minVal)*float64(c.Height-1)))
		return x, y
	}

	for idx, s := range c.Series {
		ch := seriesChar(idx)
		for i, v := range s.Points {
			x, y := toXY(i, len(s.Points), v)
			if i > 0 {
				px, py := toXY(i-1, len(s.Points), s.Points[i-1])
				drawLine(grid, px, py, x, y, ch)
			} else {
				drawLine(grid, x, y, x, y, ch)
			}
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var out strings.Builder
	for i, row := range grid {
		label := ""
		if i == 0 || i == c.Height-1 || i == (c.Height-1)/2 {
			label = formatChartValue(maxVal - float64(i)/float64(c.Height-1)*(maxVal-minVal))
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │")
		out.WriteString(string(row))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth))

	if len(c.Labels) > 1 {
		first, last := c.Labels[0], c.Labels[len(c.Labels)-1]
		gap := chartWidth - lipgloss.Width(first) - lipgloss.Width(last)
		if gap < 1 {
			gap = 1
		}
		out.WriteString("\n")
		out.WriteString(strings.Repeat(" ", yAxisWidth+2))
		out.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(first + strings.Repeat(" ", gap) + last))
	}
	return out.String()
}

func seriesChar(index int) rune {
	chars := []rune{'●', '·', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine draws between two points with Bresenham's algorithm, leaving
// cells already drawn by earlier series untouched
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = char
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.Join(items, "  "))
}

// formatChartValue abbreviates a dollar amount for the y axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	}
	return fmt.Sprintf("$%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
