package display

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	moduleColor  = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	moduleStyle = lipgloss.NewStyle().
			Foreground(moduleColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	startedStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	stoppedStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// styler applies lipgloss styles, or nothing for plain text.
type styler struct {
	enabled bool
}

func (s styler) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func stateStyle(state State) lipgloss.Style {
	switch state {
	case StateStarted:
		return startedStyle
	case StateUnstartable:
		return errorStyle
	default:
		return stoppedStyle
	}
}

// FormatError renders err for the terminal, in red when styled.
func FormatError(err error, styled bool) string {
	return styler{enabled: styled}.render(errorStyle, "Error: "+err.Error())
}
