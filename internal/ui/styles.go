package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// SuccessLine renders msg for the confirmation line.
// Without color it is returned unchanged so piped output stays exact.
func SuccessLine(msg string, color bool) string {
	if !color {
		return msg
	}
	return SuccessStyle.Render(msg)
}

// ErrorLine renders msg for a failure reported on stderr.
func ErrorLine(msg string, color bool) string {
	if !color {
		return msg
	}
	return ErrorStyle.Render(msg)
}

// Summary renders a dimmed detail line for stderr.
func Summary(msg string, color bool) string {
	if !color {
		return msg
	}
	return MutedStyle.Render(msg)
}
