package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7AA2F7") // steel blue
	successColor = lipgloss.Color("#85DCB0") // mint green
	warningColor = lipgloss.Color("#F6AE2D") // amber warning
	errorColor   = lipgloss.Color("#E85D75") // soft red
	mutedColor   = lipgloss.Color("#6B7280") // gray
	textColor    = lipgloss.Color("#F3F4F6") // light text
	dimTextColor = lipgloss.Color("#9CA3AF") // dim text

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginTop(1).
			MarginBottom(1)

	pathStyle = lipgloss.NewStyle().
			Foreground(textColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Width(14)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	confirmPromptStyle = lipgloss.NewStyle().
				Foreground(warningColor).
				Bold(true).
				MarginTop(1)

	confirmYesStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	confirmNoStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginTop(2)

	iconSuccess = "✓"
	iconError   = "✗"
	iconSkipped = "○"
	iconWarning = "⚠"
	iconFolder  = "📁"
)
