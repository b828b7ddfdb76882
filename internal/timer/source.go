package timer

// Source is the clock source contract shared by both realizations.
//
// Exactly one Source drives countdown state for the active task at a time.
// When switching realizations, the controller passes the last observed
// timeLeft into Start so the replacement neither double-counts nor skips a
// second. Events from a single Source are delivered in generation order;
// no ordering is guaranteed across a switch.
type Source interface {
	// Start begins ticking from timeLeft toward zero. Passing timeLeft
	// equal to duration starts fresh; a lower value resumes a handed-off
	// countdown. Starting a running source restarts it with the given
	// parameters. Returns ErrSourceClosed after Close.
	Start(duration, timeLeft, recurrentTime int) error

	// Pause stops tick emission without discarding countdown state.
	// The countdown is resumable via Start with the last ticked timeLeft.
	Pause() error

	// Reset discards countdown state, the reminder debounce, and the
	// completion latch, then emits a reset event with the restored
	// timeLeft.
	Reset(duration int) error

	// Update adjusts duration and reminder interval mid-run. A nil
	// timeLeft keeps the current countdown position.
	Update(duration, recurrentTime int, timeLeft *int) error

	// Events returns the upstream event stream. The channel is closed by
	// Close; consumers should range over it.
	Events() <-chan Event

	// Close terminates the source. No further commands are processed and
	// no further events are emitted after Close returns.
	Close()
}

// eventBuffer is the capacity of a source's upstream event channel.
// Sized to absorb short consumer stalls (a second of ticks plus ritual
// notifications) without dropping generation order.
const eventBuffer = 64
