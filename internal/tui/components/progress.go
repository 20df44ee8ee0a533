package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/isoamt/internal/tui/tuistyles"
)

// warnAbove is the utilization, in percent, from which the gauge turns amber
const warnAbove = 90.0

// ProgressBar shows how much of the AMT budget an exercise consumes
type ProgressBar struct {
	Percent float64
	Width   int
	Label   string
}

// NewProgressBar creates a gauge for a utilization percentage
func NewProgressBar(percent float64) *ProgressBar {
	return &ProgressBar{Percent: percent, Width: 40}
}

// WithLabel sets the gauge label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Render returns the styled gauge
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Bold(true).Render(p.Label))
		content.WriteString("\n")
	}

	filled := int(float64(p.Width) * p.Percent / 100)
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	color := tuistyles.ColorSuccess
	if p.Percent >= warnAbove {
		color = tuistyles.ColorWarning
	}
	content.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)))
	content.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("░", p.Width-filled)))
	content.WriteString(fmt.Sprintf(" %.1f%%", p.Percent))

	return content.String()
}
