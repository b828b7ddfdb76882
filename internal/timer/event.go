// Package timer implements the countdown clock source for pacebell.
//
// A clock source produces one tick per second for the active task and emits
// structured events at reminder boundaries, the final-minute mark, and
// completion. Two interchangeable realizations exist: TickerSource runs in
// the caller's goroutine context, WorkerSource hosts the countdown in a
// dedicated background goroutine and speaks a command/event message protocol.
//
// Import rules:
//   - CAN import: internal/clock, internal/constants, internal/domain,
//     internal/errors, std lib
//   - MUST NOT import: internal/tui, internal/cli, internal/sequencer
package timer

// Command action strings for the downstream (controller → worker) direction.
const (
	// ActionStart begins or resumes a countdown.
	ActionStart = "start"

	// ActionPause stops tick emission without discarding countdown state.
	ActionPause = "pause"

	// ActionReset discards countdown state, the reminder debounce, and the
	// completion latch, restoring timeLeft to the full duration.
	ActionReset = "reset"

	// ActionUpdate adjusts duration and reminder interval mid-run, for
	// example when the active task is edited.
	ActionUpdate = "update"
)

// Event type strings for the upstream (worker → controller) direction.
const (
	// EventTick reports the decremented timeLeft once per second.
	EventTick = "tick"

	// EventNotification carries reminder and final-minute notifications.
	EventNotification = "notification"

	// EventComplete signals the countdown reached zero. Emitted exactly
	// once per activation.
	EventComplete = "complete"

	// EventReset confirms a reset and reports the restored timeLeft.
	EventReset = "reset"
)

// Notification kinds within an EventNotification.
const (
	// NotificationRecurrent is the periodic "still working" reminder.
	NotificationRecurrent = "recurrent"

	// NotificationFinalMinute fires when exactly one minute remains.
	NotificationFinalMinute = "finalMinute"
)

// Command is a downstream message to a clock source.
//
// Wire shapes:
//
//	{"action":"start","data":{"duration":300,"timeLeft":300,"recurrentTime":60}}
//	{"action":"pause"}
//	{"action":"reset","data":{"duration":300}}
//	{"action":"update","data":{"duration":600,"recurrentTime":120,"timeLeft":450}}
type Command struct {
	Action string       `json:"action"`
	Data   *CommandData `json:"data,omitempty"`
}

// CommandData carries the payload of start/reset/update commands.
type CommandData struct {
	// Duration is the total task duration in seconds.
	Duration int `json:"duration,omitempty"`

	// TimeLeft is the countdown position to start from. A pointer so the
	// update command can omit it to leave the position untouched.
	TimeLeft *int `json:"timeLeft,omitempty"`

	// RecurrentTime is the reminder interval in seconds, zero disables.
	RecurrentTime int `json:"recurrentTime,omitempty"`
}

// Event is an upstream message from a clock source.
//
// Wire shapes:
//
//	{"type":"tick","data":{"timeLeft":299}}
//	{"type":"notification","data":{"type":"recurrent","elapsed":60}}
//	{"type":"notification","data":{"type":"finalMinute"}}
//	{"type":"complete"}
//	{"type":"reset","data":{"timeLeft":300}}
type Event struct {
	Type string     `json:"type"`
	Data *EventData `json:"data,omitempty"`
}

// EventData carries the payload of tick/notification/reset events.
type EventData struct {
	// TimeLeft is present on tick and reset events. A pointer so the final
	// tick's zero serializes instead of being omitted.
	TimeLeft *int `json:"timeLeft,omitempty"`

	// Kind distinguishes notification events: recurrent or finalMinute.
	Kind string `json:"type,omitempty"`

	// Elapsed is the seconds elapsed at a recurrent notification.
	Elapsed int `json:"elapsed,omitempty"`
}

// NewStartCommand builds a start command with an explicit timeLeft handoff.
// Passing the current timeLeft lets a replacement source pick up exactly
// where the previous one stopped, without double-counting a second.
func NewStartCommand(duration, timeLeft, recurrentTime int) Command {
	tl := timeLeft
	return Command{
		Action: ActionStart,
		Data: &CommandData{
			Duration:      duration,
			TimeLeft:      &tl,
			RecurrentTime: recurrentTime,
		},
	}
}

// NewPauseCommand builds a pause command.
func NewPauseCommand() Command {
	return Command{Action: ActionPause}
}

// NewResetCommand builds a reset command for the given duration.
func NewResetCommand(duration int) Command {
	return Command{
		Action: ActionReset,
		Data:   &CommandData{Duration: duration},
	}
}

// NewUpdateCommand builds an update command. timeLeft may be nil to keep
// the current countdown position.
func NewUpdateCommand(duration, recurrentTime int, timeLeft *int) Command {
	return Command{
		Action: ActionUpdate,
		Data: &CommandData{
			Duration:      duration,
			TimeLeft:      timeLeft,
			RecurrentTime: recurrentTime,
		},
	}
}

// NewTickEvent builds a tick event.
func NewTickEvent(timeLeft int) Event {
	tl := timeLeft
	return Event{Type: EventTick, Data: &EventData{TimeLeft: &tl}}
}

// NewRecurrentEvent builds a periodic reminder notification event.
func NewRecurrentEvent(elapsed int) Event {
	return Event{
		Type: EventNotification,
		Data: &EventData{Kind: NotificationRecurrent, Elapsed: elapsed},
	}
}

// NewFinalMinuteEvent builds a final-minute warning notification event.
func NewFinalMinuteEvent() Event {
	return Event{
		Type: EventNotification,
		Data: &EventData{Kind: NotificationFinalMinute},
	}
}

// NewCompleteEvent builds a completion event.
func NewCompleteEvent() Event {
	return Event{Type: EventComplete}
}

// NewResetEvent builds a reset confirmation event.
func NewResetEvent(timeLeft int) Event {
	tl := timeLeft
	return Event{Type: EventReset, Data: &EventData{TimeLeft: &tl}}
}
