// Package tuistyles holds the shared palette and lipgloss styles so that
// components and the top-level model can use them without an import cycle.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorPrimary    = lipgloss.Color("#2563EB")
	ColorSecondary  = lipgloss.Color("#7C3AED")
	ColorAccent     = lipgloss.Color("#F59E0B")
	ColorSuccess    = lipgloss.Color("#10B981")
	ColorWarning    = lipgloss.Color("#F97316")
	ColorDanger     = lipgloss.Color("#EF4444")
	ColorInfo       = lipgloss.Color("#06B6D4")
	ColorForeground = lipgloss.Color("#E5E7EB")
	ColorMuted      = lipgloss.Color("#9CA3AF")
	ColorBorder     = lipgloss.Color("#4B5563")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SelectedItemStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)
)

// MetricTrendStyle colors a trend green when it is favorable
func MetricTrendStyle(favorable bool) lipgloss.Style {
	if favorable {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for the direction of change
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}
