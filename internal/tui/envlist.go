package tui

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/lazymesh/lazymesh/internal/core"
)

// SelectionPhase tracks the environment pane's state machine:
// no-selection → loading → populated → selected. A re-fetch discards the
// detail view and returns to populated with no selection.
type SelectionPhase int

const (
	PhaseNone SelectionPhase = iota
	PhaseLoading
	PhasePopulated
	PhaseSelected
)

// EnvList is the environment selector pane.
type EnvList struct {
	phase    SelectionPhase
	all      []core.Environment
	visible  []core.Environment
	query    string
	cursor   int
	selected string
}

// NewEnvList creates an empty selector.
func NewEnvList() *EnvList {
	return &EnvList{phase: PhaseNone}
}

// Phase returns the current selection phase.
func (l *EnvList) Phase() SelectionPhase { return l.phase }

// StartLoading marks a fetch in flight.
func (l *EnvList) StartLoading() {
	l.phase = PhaseLoading
}

// SetEnvironments replaces the list with a fresh fetch. Any previous
// selection and filter are discarded; the first environment is highlighted.
func (l *EnvList) SetEnvironments(envs []core.Environment) {
	l.all = envs
	l.query = ""
	l.cursor = 0
	l.selected = ""
	l.visible = envs
	if len(envs) == 0 {
		l.phase = PhaseNone
		return
	}
	l.phase = PhasePopulated
}

// Filter narrows the visible list with a fuzzy match on environment names.
func (l *EnvList) Filter(query string) {
	l.query = query
	l.cursor = 0
	if query == "" {
		l.visible = l.all
		return
	}

	names := make([]string, len(l.all))
	for i, e := range l.all {
		names[i] = e.Name
	}
	matches := fuzzy.Find(query, names)
	l.visible = make([]core.Environment, 0, len(matches))
	for _, m := range matches {
		l.visible = append(l.visible, l.all[m.Index])
	}
}

// MoveUp moves the highlight towards the top.
func (l *EnvList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the highlight towards the bottom.
func (l *EnvList) MoveDown() {
	if l.cursor < len(l.visible)-1 {
		l.cursor++
	}
}

// Highlighted returns the environment under the cursor.
func (l *EnvList) Highlighted() (core.Environment, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return core.Environment{}, false
	}
	return l.visible[l.cursor], true
}

// Select marks the highlighted environment as selected and returns it.
func (l *EnvList) Select() (core.Environment, bool) {
	env, ok := l.Highlighted()
	if !ok {
		return core.Environment{}, false
	}
	l.selected = env.Name
	l.phase = PhaseSelected
	return env, true
}

// Selected returns the selected environment name, empty when none.
func (l *EnvList) Selected() string { return l.selected }

// Len returns the number of fetched environments.
func (l *EnvList) Len() int { return len(l.all) }

// View renders the pane body.
func (l *EnvList) View(s Styles, height int) string {
	if l.phase == PhaseLoading {
		return s.Subtle.Render("loading environments…")
	}

	var b strings.Builder
	if l.query != "" {
		b.WriteString(s.Subtle.Render("/" + l.query))
		b.WriteByte('\n')
		height--
	}

	if len(l.visible) == 0 {
		if l.query != "" {
			b.WriteString(s.Subtle.Render("no match for " + l.query))
			return b.String()
		}
		return s.Subtle.Render("no environments")
	}

	for i, env := range l.visible {
		if height > 0 && i >= height {
			break
		}
		label := fmt.Sprintf("%s (%d)", env.Name, len(env.Snapshots))
		switch {
		case i == l.cursor:
			b.WriteString(s.EnvSelected.Render(label))
		case env.Name == l.selected:
			b.WriteString(s.EnvItem.Bold(true).Render(label))
		default:
			b.WriteString(s.EnvItem.Render(label))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
