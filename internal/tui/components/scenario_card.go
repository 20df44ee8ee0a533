package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/isoamt/internal/tui/tuistyles"
)

// ScenarioCard summarizes one quick scenario or sensitivity case
type ScenarioCard struct {
	Name       string
	Highlights []string
	Disabled   bool
	IsSelected bool
	Width      int
}

// NewScenarioCard creates a new scenario card
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{Name: name, Width: 22}
}

// AddHighlight adds a line under the title
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetDisabled greys the card out, for cases that could not be computed
func (s *ScenarioCard) SetDisabled(disabled bool) *ScenarioCard {
	s.Disabled = disabled
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled scenario card
func (s *ScenarioCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
	if s.Disabled {
		titleStyle = titleStyle.Foreground(tuistyles.ColorMuted)
		highlightStyle = highlightStyle.Foreground(tuistyles.ColorMuted).Italic(true)
	}
	content.WriteString(titleStyle.Render(s.Name))
	for _, h := range s.Highlights {
		content.WriteString("\n")
		content.WriteString(highlightStyle.Render(h))
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(content.String())
}

// ScenarioRow renders cards side by side
func ScenarioRow(cards []*ScenarioCard) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}
	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
