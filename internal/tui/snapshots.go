package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazymesh/lazymesh/internal/core"
)

// SnapshotTable is the detail pane listing one environment's snapshots.
type SnapshotTable struct {
	table table.Model
	env   string
}

// NewSnapshotTable creates an empty detail table.
func NewSnapshotTable(theme Theme) *SnapshotTable {
	columns := []table.Column{
		{Title: "Snapshot", Width: 40},
		{Title: "Identifier", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(theme.Secondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(theme.Text).
		Background(theme.Highlight)
	t.SetStyles(styles)

	return &SnapshotTable{table: t}
}

// SetEnvironment replaces the rows with env's snapshots.
func (s *SnapshotTable) SetEnvironment(env *core.Environment) {
	s.env = env.Name
	rows := make([]table.Row, 0, len(env.Snapshots))
	for _, snap := range env.Snapshots {
		rows = append(rows, table.Row{snap.Name, snap.Identifier})
	}
	s.table.SetRows(rows)
	s.table.GotoTop()
}

// Clear empties the detail view; called when the list is re-fetched.
func (s *SnapshotTable) Clear() {
	s.env = ""
	s.table.SetRows(nil)
}

// Environment returns the environment the table currently shows.
func (s *SnapshotTable) Environment() string { return s.env }

// Rows returns the current row count.
func (s *SnapshotTable) Rows() int { return len(s.table.Rows()) }

// SetSize resizes the table.
func (s *SnapshotTable) SetSize(width, height int) {
	s.table.SetWidth(width)
	s.table.SetHeight(height)
}

// View renders the table.
func (s *SnapshotTable) View() string {
	return s.table.View()
}
