package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazymesh/lazymesh/internal/control"
	"github.com/lazymesh/lazymesh/internal/logging"
)

func newTestDispatcher(t *testing.T, fake *fakeProject) *Dispatcher {
	t.Helper()
	slots := &control.Slots{}
	t.Cleanup(slots.StopAll)
	return NewDispatcher(context.Background(), fake, slots, logging.NewNop(), time.Second)
}

func TestFetchSupersedesFetchInFlight(t *testing.T) {
	fake := &fakeProject{}
	d := newTestDispatcher(t, fake)

	first := d.FetchEnvironments()
	second := d.FetchEnvironments() // cancels the first slot occupant

	// The superseded fetch only balances the busy count; the newer one
	// reports the list.
	_, superseded := first().(FetchSupersededMsg)
	assert.True(t, superseded)
	msg := second()
	loaded, ok := msg.(EnvironmentsLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
}

func TestPlanSupersededReportsCancellation(t *testing.T) {
	fake := &fakeProject{}
	d := newTestDispatcher(t, fake)

	first := d.Plan("dev")
	second := d.Plan("dev")

	done, ok := first().(PlanDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.Err, context.Canceled)

	done, ok = second().(PlanDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
}

func TestRunIsNotExclusive(t *testing.T) {
	fake := &fakeProject{}
	d := newTestDispatcher(t, fake)

	first := d.Run("dev")
	second := d.Run("staging")

	done, ok := first().(RunDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	done, ok = second().(RunDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, 2, fake.runs)
}

func TestShellCommandTimesOut(t *testing.T) {
	fake := &fakeProject{}
	slots := &control.Slots{}
	t.Cleanup(slots.StopAll)
	d := NewDispatcher(context.Background(), fake, slots, logging.NewNop(), 100*time.Millisecond)

	msg := d.Shell("sleep 5")()
	done, ok := msg.(ShellDoneMsg)
	require.True(t, ok)
	assert.True(t, done.TimedOut)
}
