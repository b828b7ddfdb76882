package timer

import (
	"time"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
)

// countdown is the shared per-second decrement algorithm behind both
// clock source realizations. It is not safe for concurrent use; each
// realization serializes access (TickerSource with a mutex, WorkerSource
// by confining it to the worker goroutine).
type countdown struct {
	state            domain.CountdownState
	reminderInterval int
}

// newCountdown creates a countdown starting from an explicit timeLeft.
// timeLeft equal to duration starts fresh; anything lower resumes a
// handed-off countdown mid-flight.
func newCountdown(duration, timeLeft, reminderInterval int) countdown {
	c := countdown{
		state:            domain.NewCountdownState(duration),
		reminderInterval: reminderInterval,
	}
	if timeLeft >= 0 && timeLeft < duration {
		c.state.TimeLeft = timeLeft
	}
	return c
}

// reset discards countdown state including the reminder debounce and the
// completion latch.
func (c *countdown) reset(duration int) {
	c.state = domain.NewCountdownState(duration)
}

// update adjusts duration and reminder interval mid-run. A non-nil
// timeLeft also moves the countdown position.
func (c *countdown) update(duration, reminderInterval int, timeLeft *int) {
	c.state.Duration = duration
	c.reminderInterval = reminderInterval
	if timeLeft != nil && *timeLeft >= 0 && *timeLeft <= duration {
		c.state.TimeLeft = *timeLeft
	}
	if c.state.TimeLeft > duration {
		c.state.TimeLeft = duration
	}
}

// startEvents returns the events an activation emits before any tick. A
// countdown started at zero has no seconds left to count; it completes
// right away instead of parking forever.
func (c *countdown) startEvents() []Event {
	if c.state.CompletionLatched || c.state.TimeLeft > 0 {
		return nil
	}
	c.state.CompletionLatched = true
	return []Event{NewTickEvent(0), NewCompleteEvent()}
}

// advance processes one tick at wall-clock time now: decrement timeLeft,
// then evaluate checks in fixed order. Returns the ordered events for this
// second: [reminder?] [finalMinute?] tick [complete?].
//
// Returns nil once the countdown has completed; the completion latch
// guarantees the complete event is produced at most once per activation.
func (c *countdown) advance(now time.Time) []Event {
	if c.state.CompletionLatched || c.state.TimeLeft <= 0 {
		return nil
	}

	c.state.TimeLeft--
	elapsed := c.state.Elapsed()
	events := make([]Event, 0, 3)

	// 1. Reminder check. The original modulo tolerance ("elapsed mod
	// interval < 1") collapses to an exact zero check at whole-second
	// granularity. The debounce guards against double-firing when the
	// interval is smaller than the window or ticks arrive with jitter.
	if c.reminderInterval > 0 && elapsed > 0 && elapsed%c.reminderInterval == 0 &&
		c.debounceElapsed(now) {
		events = append(events, NewRecurrentEvent(elapsed))
		c.state.LastReminderFiredAt = now
	}

	// 2. Final-minute check. timeLeft passes through the mark exactly once
	// per countdown, so this fires at most once and never when the task is
	// shorter than a minute.
	if c.state.TimeLeft == constants.FinalMinuteMark {
		events = append(events, NewFinalMinuteEvent())
	}

	// 3. Always tick.
	events = append(events, NewTickEvent(c.state.TimeLeft))

	// 4. Completion, latched.
	if c.state.TimeLeft == 0 {
		c.state.CompletionLatched = true
		events = append(events, NewCompleteEvent())
	}

	return events
}

// debounceElapsed reports whether enough real time has passed since the
// last reminder fire.
func (c *countdown) debounceElapsed(now time.Time) bool {
	if c.state.LastReminderFiredAt.IsZero() {
		return true
	}
	return now.Sub(c.state.LastReminderFiredAt) >= constants.ReminderDebounce
}

// finished reports whether the countdown has completed.
func (c *countdown) finished() bool {
	return c.state.CompletionLatched
}
