package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacebell/pacebell/internal/clock"
	"github.com/pacebell/pacebell/internal/errors"
)

// recvEvents receives exactly n events from ch, failing the test if the
// stream stalls or closes early.
func recvEvents(t *testing.T, ch <-chan Event, n int) []Event {
	t.Helper()

	out := make([]Event, 0, n)
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "event stream closed after %d of %d events", len(out), n)
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

// requireNoEvent asserts that ch stays quiet for a short grace period.
func requireNoEvent(t *testing.T, ch <-chan Event) {
	t.Helper()

	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

// waitTickers blocks until the manual clock has exactly n live tickers,
// so an Advance cannot race the source's ticker registration.
func waitTickers(t *testing.T, m *clock.Manual, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.TickerCount() == n
	}, 2*time.Second, time.Millisecond)
}

// tickValues extracts the timeLeft of every tick event, in order.
func tickValues(events []Event) []int {
	var vals []int
	for _, ev := range eventsOfType(events, EventTick) {
		vals = append(vals, *ev.Data.TimeLeft)
	}
	return vals
}

func TestTickerSource_TickDelivery(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)
	defer s.Close()

	require.NoError(t, s.Start(5, 5, 0))
	waitTickers(t, m, 1)
	m.Advance(5 * time.Second)

	events := recvEvents(t, s.Events(), 6)
	assert.Equal(t, []int{4, 3, 2, 1, 0}, tickValues(events))
	assert.Equal(t, EventComplete, events[5].Type)
	requireNoEvent(t, s.Events())
}

func TestTickerSource_PauseResumeNoDoubleCount(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)
	defer s.Close()

	require.NoError(t, s.Start(10, 10, 0))
	waitTickers(t, m, 1)
	m.Advance(3 * time.Second)
	assert.Equal(t, []int{9, 8, 7}, tickValues(recvEvents(t, s.Events(), 3)))

	require.NoError(t, s.Pause())
	waitTickers(t, m, 0)
	m.Advance(10 * time.Second)
	requireNoEvent(t, s.Events())

	// Resume passes the last observed timeLeft so no second is lost or
	// counted twice across the gap.
	require.NoError(t, s.Start(10, 7, 0))
	waitTickers(t, m, 1)
	m.Advance(7 * time.Second)

	events := recvEvents(t, s.Events(), 8)
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1, 0}, tickValues(events))
	assert.Equal(t, EventComplete, events[7].Type)
}

func TestTickerSource_ResetEmitsEvent(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)
	defer s.Close()

	require.NoError(t, s.Start(10, 10, 0))
	waitTickers(t, m, 1)
	m.Advance(2 * time.Second)
	recvEvents(t, s.Events(), 2)

	require.NoError(t, s.Reset(10))
	events := recvEvents(t, s.Events(), 1)
	assert.Equal(t, EventReset, events[0].Type)
	require.NotNil(t, events[0].Data)
	assert.Equal(t, 10, *events[0].Data.TimeLeft)

	// Reset leaves the source stopped; time passing emits nothing.
	m.Advance(10 * time.Second)
	requireNoEvent(t, s.Events())
}

func TestTickerSource_UpdateMidRun(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)
	defer s.Close()

	require.NoError(t, s.Start(300, 300, 0))
	waitTickers(t, m, 1)

	timeLeft := 100
	require.NoError(t, s.Update(300, 0, &timeLeft))
	m.Advance(time.Second)

	events := recvEvents(t, s.Events(), 1)
	assert.Equal(t, []int{99}, tickValues(events))
}

func TestTickerSource_ReusableAfterCompletion(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)
	defer s.Close()

	require.NoError(t, s.Start(2, 2, 0))
	waitTickers(t, m, 1)
	m.Advance(2 * time.Second)
	events := recvEvents(t, s.Events(), 3)
	assert.Equal(t, EventComplete, events[2].Type)

	require.NoError(t, s.Start(3, 3, 0))
	waitTickers(t, m, 1)
	m.Advance(3 * time.Second)
	events = recvEvents(t, s.Events(), 4)
	assert.Equal(t, []int{2, 1, 0}, tickValues(events))
	assert.Equal(t, EventComplete, events[3].Type)
}

func TestTickerSource_StartAtZeroCompletesImmediately(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)
	defer s.Close()

	require.NoError(t, s.Start(10, 0, 0))

	events := recvEvents(t, s.Events(), 2)
	assert.Equal(t, []int{0}, tickValues(events))
	assert.Equal(t, EventComplete, events[1].Type)

	// No tick goroutine was started.
	assert.Equal(t, 0, m.TickerCount())
	requireNoEvent(t, s.Events())
}

func TestTickerSource_ResetUnblocksOnClose(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)

	// Fill the event buffer with no consumer attached.
	for i := 0; i < eventBuffer; i++ {
		require.NoError(t, s.Reset(10))
	}

	done := make(chan error, 1)
	go func() { done <- s.Reset(10) }()

	select {
	case err := <-done:
		t.Fatalf("reset returned with a full buffer and no consumer: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	s.Close()
	require.NoError(t, <-done)
}

func TestTickerSource_Close(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := NewTickerSource(m)

	require.NoError(t, s.Start(10, 10, 0))
	waitTickers(t, m, 1)
	s.Close()

	require.ErrorIs(t, s.Start(10, 10, 0), errors.ErrSourceClosed)
	require.ErrorIs(t, s.Pause(), errors.ErrSourceClosed)
	require.ErrorIs(t, s.Reset(10), errors.ErrSourceClosed)
	require.ErrorIs(t, s.Update(10, 0, nil), errors.ErrSourceClosed)

	// Closing twice is safe and the stream drains to closed.
	s.Close()
	for range s.Events() { //nolint:revive // drain until close
	}
}
