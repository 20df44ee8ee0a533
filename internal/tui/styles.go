package tui

import "github.com/rgehrsitz/isoamt/internal/tui/tuistyles"

// Re-export the styles the model renders with
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorAccent  = tuistyles.ColorAccent
	ColorMuted   = tuistyles.ColorMuted

	AppStyle       = tuistyles.AppStyle
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	BorderStyle    = tuistyles.BorderStyle
	ErrorStyle     = tuistyles.ErrorStyle
	InfoStyle      = tuistyles.InfoStyle
)
