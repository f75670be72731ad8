package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazymesh/lazymesh/internal/control"
)

const inputPlaceholder = "command (? for help, : for methods, ! for shell)"

// Terminal is the scrolling log plus the command input line. While a prompt
// is pending, the same input collects the answer; the pending request is
// tracked here so the model can resolve the bridge with the right id.
type Terminal struct {
	viewport viewport.Model
	input    textinput.Model
	history  *History
	styles   Styles

	lines   []string
	pending *control.Request
	ready   bool
}

// NewTerminal creates the widget with a bounded command history.
func NewTerminal(styles Styles, historySize int) *Terminal {
	input := textinput.New()
	input.Placeholder = inputPlaceholder
	input.Prompt = "> "
	input.CharLimit = 512
	input.Focus()

	return &Terminal{
		input:   input,
		history: NewHistory(historySize),
		styles:  styles,
	}
}

// SetStyles swaps the style set, used when the theme toggles.
func (t *Terminal) SetStyles(styles Styles) {
	t.styles = styles
}

// SetSize resizes the log viewport; the input takes one extra line.
func (t *Terminal) SetSize(width, height int) {
	t.input.Width = width - 4
	if !t.ready {
		t.viewport = viewport.New(width, height-1)
		t.ready = true
	} else {
		t.viewport.Width = width
		t.viewport.Height = height - 1
	}
	t.refresh()
}

// Append adds one line to the log. Level picks the style: error, warn,
// debug, echo, or anything else for plain text.
func (t *Terminal) Append(level, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		t.lines = append(t.lines, t.styleFor(level).Render(line))
	}
	t.refresh()
}

func (t *Terminal) styleFor(level string) lipgloss.Style {
	switch level {
	case "error":
		return t.styles.LogError
	case "warn":
		return t.styles.LogWarn
	case "debug":
		return t.styles.LogDebug
	case "echo":
		return t.styles.Echo
	case "prompt":
		return t.styles.Prompt
	default:
		return t.styles.Log
	}
}

func (t *Terminal) refresh() {
	if !t.ready {
		return
	}
	t.viewport.SetContent(strings.Join(t.lines, "\n"))
	t.viewport.GotoBottom()
}

// Text returns the whole log as plain lines for clipboard copy.
func (t *Terminal) Text() string {
	return strings.Join(t.lines, "\n")
}

// BeginPrompt switches the input into answer mode for req: the question goes
// into the log and the placeholder announces the expected shape.
func (t *Terminal) BeginPrompt(req control.Request) {
	t.pending = &req
	t.Append("prompt", req.Message)
	t.input.Placeholder = req.Placeholder
	t.input.SetValue("")
	t.input.Focus()
}

// PendingPrompt returns the outstanding request, if any.
func (t *Terminal) PendingPrompt() *control.Request {
	return t.pending
}

// EndPrompt restores normal command mode.
func (t *Terminal) EndPrompt() {
	t.pending = nil
	t.input.Placeholder = inputPlaceholder
}

// Submit consumes the current input line, echoes it into the log, and
// returns it. The caller routes it.
func (t *Terminal) Submit() string {
	line := t.input.Value()
	t.Append("echo", "> "+line)
	t.input.SetValue("")
	t.history.ResetCursor()
	return line
}

// Restore puts a failed line back into the input so it can be corrected.
func (t *Terminal) Restore(line string) {
	t.input.SetValue(line)
	t.input.CursorEnd()
}

// RecordHistory pushes a successfully routed line.
func (t *Terminal) RecordHistory(line string) {
	t.history.Push(line)
}

// History exposes the bounded history for navigation and tests.
func (t *Terminal) History() *History { return t.history }

// HistoryPrev loads the previous (older) line into the input.
func (t *Terminal) HistoryPrev() {
	if line, ok := t.history.Prev(); ok {
		t.input.SetValue(line)
		t.input.CursorEnd()
	}
}

// HistoryNext loads the next (newer) line into the input.
func (t *Terminal) HistoryNext() {
	if line, ok := t.history.Next(); ok {
		t.input.SetValue(line)
		t.input.CursorEnd()
	}
}

// Update forwards events to the input and viewport.
func (t *Terminal) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	cmds = append(cmds, cmd)
	t.viewport, cmd = t.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// View renders the log above the input line.
func (t *Terminal) View() string {
	if !t.ready {
		return ""
	}
	return fmt.Sprintf("%s\n%s", t.viewport.View(), t.input.View())
}

// Bell rings the terminal bell. Used when a line fails to route.
func Bell() {
	fmt.Fprint(os.Stderr, "\a")
}
