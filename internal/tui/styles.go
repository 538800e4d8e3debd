package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7D56F4")
	textColor    = lipgloss.Color("#FAFAFA")
	mutedColor   = lipgloss.Color("#626262")
	accentColor  = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF5F87")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			PaddingLeft(1).
			PaddingRight(1)

	paramStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(1)

	okStyle = lipgloss.NewStyle().
		Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)
