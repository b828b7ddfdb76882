package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "clock.Now() should not return time before actual time.Now()")
	assert.False(t, got.After(after), "clock.Now() should not return time after actual time.Now()")
}

func TestRealClock_Sleep_ContextCancel(t *testing.T) {
	c := RealClock{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRealClock_Sleep_Elapses(t *testing.T) {
	c := RealClock{}
	err := c.Sleep(context.Background(), time.Millisecond)
	assert.NoError(t, err)
}

func TestManual_Now(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	m := NewManual(start)

	assert.Equal(t, start, m.Now())

	m.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), m.Now())
}

func TestManual_Ticker(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	m := NewManual(start)
	ticker := m.NewTicker(time.Second)

	// Advancing 3 seconds delivers 3 ticks with increasing timestamps.
	m.Advance(3 * time.Second)
	for i := 1; i <= 3; i++ {
		select {
		case ts := <-ticker.Chan():
			assert.Equal(t, start.Add(time.Duration(i)*time.Second), ts)
		default:
			t.Fatalf("expected tick %d to be buffered", i)
		}
	}

	// No extra ticks.
	select {
	case <-ticker.Chan():
		t.Fatal("unexpected extra tick")
	default:
	}

	// Stopped tickers receive nothing.
	ticker.Stop()
	m.Advance(5 * time.Second)
	select {
	case <-ticker.Chan():
		t.Fatal("tick delivered after Stop")
	default:
	}
}

func TestManual_Sleep(t *testing.T) {
	m := NewManual(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC))

	done := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		close(ready)
		done <- m.Sleep(context.Background(), 5*time.Second)
	}()
	<-ready

	// Give the sleeper a moment to register before advancing.
	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.waiters) == 1
	}, time.Second, time.Millisecond)

	// Partial advance does not wake the sleeper.
	m.Advance(3 * time.Second)
	select {
	case <-done:
		t.Fatal("sleep returned before deadline")
	case <-time.After(10 * time.Millisecond):
	}

	// Crossing the deadline wakes it.
	m.Advance(2 * time.Second)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sleep did not return after deadline")
	}
}

func TestManual_Sleep_ZeroDuration(t *testing.T) {
	m := NewManual(time.Now())
	assert.NoError(t, m.Sleep(context.Background(), 0))
}
