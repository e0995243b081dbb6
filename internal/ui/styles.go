// Package ui holds the terminal styles and the plain rendering helpers used
// by the CLI and the interactive session.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the terminal output.
var (
	ColorGreen   = lipgloss.Color("#3FB950")
	ColorYellow  = lipgloss.Color("#FFD700")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#808080")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorRed     = lipgloss.Color("#FF5555")
)

// Base styles reused by components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	WordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	GlossStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StarStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	AbbrStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ExampleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LinkStyle = lipgloss.NewStyle()

	ActiveLinkStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(ColorCyan)

	TranscriptionStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
