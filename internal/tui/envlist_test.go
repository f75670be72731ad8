package tui

import (
	"testing"

	"github.com/lazymesh/lazymesh/internal/core"
)

func sampleEnvs() []core.Environment {
	return []core.Environment{
		{Name: "dev"},
		{Name: "prod"},
		{Name: "staging"},
	}
}

func TestEnvList_PhaseTransitions(t *testing.T) {
	l := NewEnvList()
	if l.Phase() != PhaseNone {
		t.Fatalf("initial phase = %v", l.Phase())
	}

	l.StartLoading()
	if l.Phase() != PhaseLoading {
		t.Fatalf("phase after StartLoading = %v", l.Phase())
	}

	l.SetEnvironments(sampleEnvs())
	if l.Phase() != PhasePopulated {
		t.Fatalf("phase after populate = %v", l.Phase())
	}

	if _, ok := l.Select(); !ok {
		t.Fatal("select failed")
	}
	if l.Phase() != PhaseSelected {
		t.Fatalf("phase after select = %v", l.Phase())
	}

	// Re-fetching discards the selection.
	l.SetEnvironments(sampleEnvs())
	if l.Phase() != PhasePopulated || l.Selected() != "" {
		t.Fatalf("phase after refetch = %v, selected %q", l.Phase(), l.Selected())
	}
}

func TestEnvList_EmptyFetch(t *testing.T) {
	l := NewEnvList()
	l.StartLoading()
	l.SetEnvironments(nil)
	if l.Phase() != PhaseNone {
		t.Fatalf("phase = %v", l.Phase())
	}
	if _, ok := l.Select(); ok {
		t.Fatal("select on empty list should fail")
	}
}

func TestEnvList_CursorMovement(t *testing.T) {
	l := NewEnvList()
	l.SetEnvironments(sampleEnvs())

	env, _ := l.Highlighted()
	if env.Name != "dev" {
		t.Fatalf("initial highlight = %q", env.Name)
	}

	l.MoveDown()
	l.MoveDown()
	l.MoveDown() // sticks at the bottom
	env, _ = l.Highlighted()
	if env.Name != "staging" {
		t.Fatalf("highlight after down = %q", env.Name)
	}

	l.MoveUp()
	env, _ = l.Highlighted()
	if env.Name != "prod" {
		t.Fatalf("highlight after up = %q", env.Name)
	}
}

func TestEnvList_FuzzyFilter(t *testing.T) {
	l := NewEnvList()
	l.SetEnvironments(sampleEnvs())

	l.Filter("stg")
	env, ok := l.Highlighted()
	if !ok || env.Name != "staging" {
		t.Fatalf("filtered highlight = %q, %v", env.Name, ok)
	}

	l.Filter("")
	if len(l.visible) != 3 {
		t.Fatalf("clearing filter should restore all, got %d", len(l.visible))
	}
}
