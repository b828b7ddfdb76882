package timer

import (
	"sync"
	"time"

	"github.com/pacebell/pacebell/internal/clock"
	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/errors"
)

// WorkerSource is the background-context clock source realization.
// The countdown lives in a dedicated worker goroutine that keeps ticking
// regardless of what the interactive context is doing. Controller and
// worker communicate only by message passing: Command downstream, Event
// upstream. Countdown state is confined to the worker; the controller
// reconstructs whatever it needs from tick events.
type WorkerSource struct {
	clk clock.Clock

	cmds   chan Command
	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWorkerSource creates a WorkerSource and launches its worker goroutine.
// The worker idles until a start command arrives.
func NewWorkerSource(clk clock.Clock) *WorkerSource {
	w := &WorkerSource{
		clk:    clk,
		cmds:   make(chan Command, 16),
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Start begins ticking from timeLeft toward zero. Starting a running
// source restarts it with the given parameters (the handoff path).
func (w *WorkerSource) Start(duration, timeLeft, recurrentTime int) error {
	return w.send(NewStartCommand(duration, timeLeft, recurrentTime))
}

// Pause stops tick emission without discarding countdown state.
func (w *WorkerSource) Pause() error {
	return w.send(NewPauseCommand())
}

// Reset discards countdown state, the reminder debounce, and the
// completion latch. The worker confirms with a reset event.
func (w *WorkerSource) Reset(duration int) error {
	return w.send(NewResetCommand(duration))
}

// Update adjusts duration and reminder interval mid-run. A nil timeLeft
// keeps the current countdown position.
func (w *WorkerSource) Update(duration, recurrentTime int, timeLeft *int) error {
	return w.send(NewUpdateCommand(duration, recurrentTime, timeLeft))
}

// Events returns the upstream event stream. Closed when the worker exits.
func (w *WorkerSource) Events() <-chan Event {
	return w.events
}

// Close terminates the worker. No further commands are processed and no
// further events are emitted after Close returns.
func (w *WorkerSource) Close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.done)
	})
	w.wg.Wait()
}

// send delivers a command to the worker, failing fast once closed.
func (w *WorkerSource) send(cmd Command) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.ErrSourceClosed
	}
	w.mu.Unlock()

	select {
	case w.cmds <- cmd:
		return nil
	case <-w.done:
		return errors.ErrSourceClosed
	}
}

// run is the worker loop. It exclusively owns the countdown: commands and
// ticks are serialized here, which is what guarantees events leave in
// generation order.
func (w *WorkerSource) run() {
	defer w.wg.Done()
	defer close(w.events)

	var cd countdown
	var ticker clock.Ticker
	var tickCh <-chan time.Time

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickCh = nil
		}
	}
	defer stopTicker()

	for {
		select {
		case <-w.done:
			return

		case cmd := <-w.cmds:
			switch cmd.Action {
			case ActionStart:
				if cmd.Data == nil {
					continue
				}
				timeLeft := cmd.Data.Duration
				if cmd.Data.TimeLeft != nil {
					timeLeft = *cmd.Data.TimeLeft
				}
				cd = newCountdown(cmd.Data.Duration, timeLeft, cmd.Data.RecurrentTime)
				stopTicker()
				if evs := cd.startEvents(); evs != nil {
					// Started at zero; complete immediately, no ticker.
					for _, ev := range evs {
						if !w.emit(ev) {
							return
						}
					}
					continue
				}
				ticker = w.clk.NewTicker(constants.TickInterval)
				tickCh = ticker.Chan()

			case ActionPause:
				stopTicker()

			case ActionReset:
				if cmd.Data == nil {
					continue
				}
				stopTicker()
				cd.reset(cmd.Data.Duration)
				if !w.emit(NewResetEvent(cd.state.TimeLeft)) {
					return
				}

			case ActionUpdate:
				if cmd.Data == nil {
					continue
				}
				cd.update(cmd.Data.Duration, cmd.Data.RecurrentTime, cmd.Data.TimeLeft)
			}

		case now := <-tickCh:
			for _, ev := range cd.advance(now) {
				if !w.emit(ev) {
					return
				}
			}
			if cd.finished() {
				stopTicker()
			}
		}
	}
}

// emit pushes an event upstream, bailing out when the source is closing.
func (w *WorkerSource) emit(ev Event) bool {
	select {
	case w.events <- ev:
		return true
	case <-w.done:
		return false
	}
}

// Ensure WorkerSource implements Source.
var _ Source = (*WorkerSource)(nil)
