package control

import (
	"context"
	"sync"
)

// Slot serializes one kind of background work. Starting new work in a slot
// cancels whatever was running there before: a fresh plan request supersedes
// the plan in flight rather than queueing behind it.
type Slot struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Start cancels any work running in the slot and returns a context for the
// new occupant, derived from parent.
func (s *Slot) Start(parent context.Context) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx
}

// Stop cancels the slot's current occupant, if any.
func (s *Slot) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Slots groups the exclusive worker slots the dispatcher uses. Fetch, plan
// and audit each supersede their own kind; everything else runs unslotted.
type Slots struct {
	Fetch Slot
	Plan  Slot
	Audit Slot
}

// StopAll cancels every occupied slot. Called on UI teardown.
func (s *Slots) StopAll() {
	s.Fetch.Stop()
	s.Plan.Stop()
	s.Audit.Stop()
}
