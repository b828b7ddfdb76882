// Package sequencer drives the run through the task list: it owns the run
// state machine, consumes clock source events, and triggers cue rituals.
//
// Import rules:
//   - CAN import: internal/clock, internal/constants, internal/domain,
//     internal/errors, internal/timer, std lib
//   - MUST NOT import: internal/tui, internal/cli
package sequencer

import (
	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/errors"
)

// ValidTransitions defines all allowed run status transitions.
// Format: from_status -> []to_statuses
//
// The state machine follows this flow:
//
//	Idle → Running
//	Running → Running (next task), AllComplete, Idle
//	AllComplete → Running, Idle
//
// Running → Running covers both advancing to the next task and StartTask
// on an already running sequencer.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.RunStatus][]constants.RunStatus{
	constants.RunStatusIdle: {constants.RunStatusRunning},
	constants.RunStatusRunning: {
		constants.RunStatusRunning,
		constants.RunStatusAllComplete,
		constants.RunStatusIdle,
	},
	constants.RunStatusAllComplete: {constants.RunStatusRunning, constants.RunStatusIdle},
}

// IsValidTransition checks if a transition from one run status to another
// is allowed.
func IsValidTransition(from, to constants.RunStatus) bool {
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// checkTransition returns ErrInvalidTransition when the transition is not
// in ValidTransitions.
func checkTransition(from, to constants.RunStatus) error {
	if !IsValidTransition(from, to) {
		return errors.Wrapf(errors.ErrInvalidTransition, "%s -> %s", from, to)
	}
	return nil
}
