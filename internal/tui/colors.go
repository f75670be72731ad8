// Package tui implements the interactive terminal interface.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme is a complete color scheme. Themes are passed into the model at
// construction; nothing reads a process-wide default.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Text       lipgloss.Color
	TextMuted  lipgloss.Color
	Border     lipgloss.Color
	Background lipgloss.Color
	Highlight  lipgloss.Color
}

// DarkTheme is the default scheme.
var DarkTheme = Theme{
	Name:       "dark",
	Primary:    lipgloss.Color("#7C3AED"), // Purple
	Secondary:  lipgloss.Color("#06B6D4"), // Cyan
	Success:    lipgloss.Color("#10B981"), // Green
	Warning:    lipgloss.Color("#F59E0B"), // Amber
	Error:      lipgloss.Color("#EF4444"), // Red
	Text:       lipgloss.Color("#E5E7EB"),
	TextMuted:  lipgloss.Color("#9CA3AF"),
	Border:     lipgloss.Color("#374151"),
	Background: lipgloss.Color("#1F2937"),
	Highlight:  lipgloss.Color("#374151"),
}

// LightTheme is the alternative scheme toggled with the dark-mode key.
var LightTheme = Theme{
	Name:       "light",
	Primary:    lipgloss.Color("#6D28D9"),
	Secondary:  lipgloss.Color("#0891B2"),
	Success:    lipgloss.Color("#059669"),
	Warning:    lipgloss.Color("#D97706"),
	Error:      lipgloss.Color("#DC2626"),
	Text:       lipgloss.Color("#1F2937"),
	TextMuted:  lipgloss.Color("#6B7280"),
	Border:     lipgloss.Color("#D1D5DB"),
	Background: lipgloss.Color("#F9FAFB"),
	Highlight:  lipgloss.Color("#E5E7EB"),
}

// ThemeByName resolves a configured theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme
	}
	return DarkTheme
}
