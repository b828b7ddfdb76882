package timer

import (
	"sync"
	"time"

	"github.com/pacebell/pacebell/internal/clock"
	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/errors"
)

// TickerSource is the interactive-context clock source realization.
// It ticks on a clock.Ticker in a goroutine it owns and mutates countdown
// state under a mutex. Subject to scheduler throttling pressure in the
// same process as the UI; WorkerSource is the throttling-immune
// alternative.
type TickerSource struct {
	clk clock.Clock

	mu      sync.Mutex
	cd      countdown
	running bool
	closed  bool
	stop    chan struct{}

	events chan Event
	quit   chan struct{}
	wg     sync.WaitGroup
}

// NewTickerSource creates a stopped TickerSource driven by clk.
func NewTickerSource(clk clock.Clock) *TickerSource {
	return &TickerSource{
		clk:    clk,
		events: make(chan Event, eventBuffer),
		quit:   make(chan struct{}),
	}
}

// Start begins ticking from timeLeft toward zero. Starting a running
// source restarts it with the given parameters; this is the handoff path,
// so the caller passes the last observed timeLeft to avoid double-counting
// or skipping a second.
func (s *TickerSource) Start(duration, timeLeft, recurrentTime int) error {
	if err := s.haltRun(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.ErrSourceClosed
	}

	s.cd = newCountdown(duration, timeLeft, recurrentTime)
	if evs := s.cd.startEvents(); evs != nil {
		// Nothing left to tick; complete immediately instead of parking
		// a goroutine on a countdown that can never advance.
		s.wg.Add(1)
		s.mu.Unlock()
		defer s.wg.Done()
		for _, ev := range evs {
			if !s.emit(ev) {
				break
			}
		}
		return nil
	}

	s.stop = make(chan struct{})
	s.running = true
	s.wg.Add(1)
	go s.run(s.stop)
	s.mu.Unlock()

	return nil
}

// Pause stops tick emission without discarding countdown state.
// Pausing a source that is not ticking is a no-op.
func (s *TickerSource) Pause() error {
	return s.haltRun()
}

// Reset discards countdown state, the reminder debounce, and the
// completion latch, then emits a reset event.
func (s *TickerSource) Reset(duration int) error {
	if err := s.haltRun(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.ErrSourceClosed
	}
	s.cd.reset(duration)
	timeLeft := s.cd.state.TimeLeft
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	s.emit(NewResetEvent(timeLeft))
	return nil
}

// Update adjusts duration and reminder interval mid-run. A nil timeLeft
// keeps the current countdown position.
func (s *TickerSource) Update(duration, recurrentTime int, timeLeft *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrSourceClosed
	}
	s.cd.update(duration, recurrentTime, timeLeft)
	return nil
}

// Events returns the upstream event stream. Closed by Close.
func (s *TickerSource) Events() <-chan Event {
	return s.events
}

// Close terminates the source. No commands are processed and no events
// are emitted after Close returns.
func (s *TickerSource) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stop := s.stopLocked()
	s.mu.Unlock()

	close(s.quit)
	if stop != nil {
		close(stop)
	}
	s.wg.Wait()
	close(s.events)
}

// emit pushes an event from a command path, bailing out when the source is
// closing. Callers register on s.wg under s.mu so Close cannot close the
// events channel while a send is in flight.
func (s *TickerSource) emit(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.quit:
		return false
	}
}

// haltRun stops the tick goroutine if one is running and waits for it to
// exit, so countdown state is stable before the next command proceeds.
func (s *TickerSource) haltRun() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.ErrSourceClosed
	}
	stop := s.stopLocked()
	s.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	s.wg.Wait()
	return nil
}

// stopLocked marks the source not running and returns the stop channel to
// close, or nil when no goroutine is active. Caller holds s.mu.
func (s *TickerSource) stopLocked() chan struct{} {
	if !s.running {
		return nil
	}
	s.running = false
	stop := s.stop
	s.stop = nil
	return stop
}

// run is the tick loop. The stop channel is captured at Start so a
// restart cannot race a previous run's shutdown.
func (s *TickerSource) run(stop chan struct{}) {
	defer s.wg.Done()

	ticker := s.clk.NewTicker(constants.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.Chan():
			if !s.handleTick(now, stop) {
				return
			}
		}
	}
}

// handleTick advances the countdown one second and emits the resulting
// events in generation order. Returns false when the loop should exit.
func (s *TickerSource) handleTick(now time.Time, stop chan struct{}) bool {
	s.mu.Lock()
	evs := s.cd.advance(now)
	done := s.cd.finished()
	if done {
		// The countdown latched complete; this run is over but the source
		// remains usable for the next activation.
		s.running = false
		s.stop = nil
	}
	s.mu.Unlock()

	for _, ev := range evs {
		select {
		case s.events <- ev:
		case <-stop:
			return false
		}
	}
	return !done
}

// Ensure TickerSource implements Source.
var _ Source = (*TickerSource)(nil)
