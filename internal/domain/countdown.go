package domain

import "time"

// CountdownState holds the per-activation countdown for the active task.
//
// Lifecycle: created when a task becomes active (timeLeft reset to the full
// duration, completion latch cleared), mutated once per tick by the clock
// source, and discarded when the task is deactivated. Exactly one clock
// source realization mutates a CountdownState at a time.
type CountdownState struct {
	// Duration is the total duration in seconds of the active task.
	Duration int `json:"duration"`

	// TimeLeft is the remaining time in seconds, 0 <= TimeLeft <= Duration.
	TimeLeft int `json:"time_left"`

	// LastReminderFiredAt is the wall-clock time of the last reminder fire.
	// It guards against re-firing within the debounce window. Zero when no
	// reminder has fired this activation.
	LastReminderFiredAt time.Time `json:"last_reminder_fired_at,omitempty"`

	// CompletionLatched guarantees the completion event fires at most once
	// per task activation.
	CompletionLatched bool `json:"completion_latched"`
}

// NewCountdownState creates a fresh countdown for a task activation.
func NewCountdownState(duration int) CountdownState {
	return CountdownState{
		Duration: duration,
		TimeLeft: duration,
	}
}

// Elapsed returns the seconds elapsed since activation.
func (c CountdownState) Elapsed() int {
	return c.Duration - c.TimeLeft
}

// Finished reports whether the countdown has reached zero.
func (c CountdownState) Finished() bool {
	return c.TimeLeft <= 0
}
