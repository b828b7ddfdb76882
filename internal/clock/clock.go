// Package clock provides an abstraction for time operations to improve
// testability. Instead of calling time.Now(), time.NewTicker(), or
// time.Sleep() directly, code uses the Clock and Delayer interfaces which
// can be replaced in tests to control time-dependent behavior without
// real sleeping.
package clock

import (
	"context"
	"time"
)

// Clock is an interface for time operations.
// This allows code to be tested with controlled clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a ticker that delivers on its channel every d.
	NewTicker(d time.Duration) Ticker
}

// Ticker abstracts time.Ticker so tests can drive ticks manually.
type Ticker interface {
	// Chan returns the channel on which ticks are delivered.
	Chan() <-chan time.Time

	// Stop turns off the ticker. No more ticks will be delivered.
	Stop()
}

// Delayer abstracts interruptible sleeping. Delays in notification
// sequencing go through this interface so unit tests never block on
// real time.
type Delayer interface {
	// Sleep blocks for d or until ctx is canceled, whichever comes first.
	// Returns ctx.Err() when interrupted, nil when the full delay elapsed.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock implements Clock and Delayer using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NewTicker returns a Ticker backed by time.NewTicker.
func (RealClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Sleep blocks for d or until ctx is canceled.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// realTicker wraps time.Ticker to satisfy the Ticker interface.
type realTicker struct {
	t *time.Ticker
}

func (r realTicker) Chan() <-chan time.Time {
	return r.t.C
}

func (r realTicker) Stop() {
	r.t.Stop()
}

// Ensure RealClock implements both interfaces.
var (
	_ Clock   = RealClock{}
	_ Delayer = RealClock{}
)
