package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds every rendered style, derived from one Theme.
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style
	Title  lipgloss.Style

	Pane         lipgloss.Style
	FocusedPane  lipgloss.Style
	EnvItem      lipgloss.Style
	EnvSelected  lipgloss.Style
	EnvCount     lipgloss.Style
	TableHeader  lipgloss.Style
	Notification lipgloss.Style
	NotifyError  lipgloss.Style

	Log      lipgloss.Style
	LogError lipgloss.Style
	LogWarn  lipgloss.Style
	LogDebug lipgloss.Style
	Echo     lipgloss.Style
	Prompt   lipgloss.Style

	Help   lipgloss.Style
	Subtle lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		EnvItem: lipgloss.NewStyle().
			Foreground(t.Text).
			PaddingLeft(1),

		EnvSelected: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Highlight).
			Bold(true).
			PaddingLeft(1),

		EnvCount: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),

		Notification: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		NotifyError: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Log: lipgloss.NewStyle().
			Foreground(t.Text),

		LogError: lipgloss.NewStyle().
			Foreground(t.Error),

		LogWarn: lipgloss.NewStyle().
			Foreground(t.Warning),

		LogDebug: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Echo: lipgloss.NewStyle().
			Foreground(t.Secondary),

		Prompt: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Italic(true),

		Subtle: lipgloss.NewStyle().
			Foreground(t.TextMuted),
	}
}
