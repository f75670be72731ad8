package tui

// History is a bounded record of submitted command lines, most recent first.
// When full, pushing a new line evicts the oldest. Lines answered to a prompt
// never enter the history; the router enforces that.
type History struct {
	lines  []string
	cap    int
	cursor int // -1 means not browsing
}

// NewHistory creates a history holding at most capacity lines.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{cap: capacity, cursor: -1}
}

// Push records a line as the most recent entry and resets browsing.
func (h *History) Push(line string) {
	h.lines = append([]string{line}, h.lines...)
	if len(h.lines) > h.cap {
		h.lines = h.lines[:h.cap]
	}
	h.cursor = -1
}

// Len returns the number of recorded lines.
func (h *History) Len() int { return len(h.lines) }

// Lines returns the recorded lines, most recent first.
func (h *History) Lines() []string { return h.lines }

// Prev steps backwards in time (towards older lines) and returns the line at
// the new position. Repeated calls stick at the oldest entry.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.cursor < len(h.lines)-1 {
		h.cursor++
	}
	return h.lines[h.cursor], true
}

// Next steps forwards in time. Stepping past the most recent entry leaves
// browsing mode and returns an empty line, so the input clears.
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	h.cursor--
	if h.cursor < 0 {
		return "", true
	}
	return h.lines[h.cursor], true
}

// ResetCursor leaves browsing mode without touching the recorded lines.
func (h *History) ResetCursor() { h.cursor = -1 }
