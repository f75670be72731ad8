package tui

import (
	"fmt"
	"testing"
)

func TestHistory_MostRecentFirst(t *testing.T) {
	h := NewHistory(10)
	h.Push("first")
	h.Push("second")
	h.Push("third")

	lines := h.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != "third" || lines[2] != "first" {
		t.Errorf("wrong order: %v", lines)
	}
}

func TestHistory_EvictsOldestWhenFull(t *testing.T) {
	const capacity = 5
	h := NewHistory(capacity)

	for i := 0; i < capacity+1; i++ {
		h.Push(fmt.Sprintf("cmd-%d", i))
	}

	lines := h.Lines()
	if len(lines) != capacity {
		t.Fatalf("got %d lines, want %d", len(lines), capacity)
	}
	// The oldest (cmd-0) is gone, the newest capacity remain.
	if lines[0] != "cmd-5" {
		t.Errorf("newest = %q", lines[0])
	}
	if lines[capacity-1] != "cmd-1" {
		t.Errorf("oldest = %q", lines[capacity-1])
	}
}

func TestHistory_Navigation(t *testing.T) {
	h := NewHistory(10)
	h.Push("one")
	h.Push("two")

	line, ok := h.Prev()
	if !ok || line != "two" {
		t.Fatalf("Prev = %q, %v", line, ok)
	}
	line, ok = h.Prev()
	if !ok || line != "one" {
		t.Fatalf("Prev = %q, %v", line, ok)
	}
	// Sticks at the oldest.
	line, _ = h.Prev()
	if line != "one" {
		t.Fatalf("Prev past oldest = %q", line)
	}

	line, ok = h.Next()
	if !ok || line != "two" {
		t.Fatalf("Next = %q, %v", line, ok)
	}
	// Stepping past the newest clears the input.
	line, ok = h.Next()
	if !ok || line != "" {
		t.Fatalf("Next past newest = %q, %v", line, ok)
	}
}

func TestHistory_EmptyNavigation(t *testing.T) {
	h := NewHistory(3)
	if _, ok := h.Prev(); ok {
		t.Error("Prev on empty history should report false")
	}
	if _, ok := h.Next(); ok {
		t.Error("Next without browsing should report false")
	}
}
