// Package errors provides centralized error handling for pacebell.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the application. All error types can be checked
// using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSound indicates an invalid sound configuration value.
	ErrConfigInvalidSound = errors.New("invalid sound configuration")

	// ErrConfigInvalidNotification indicates an invalid notification
	// configuration value.
	ErrConfigInvalidNotification = errors.New("invalid notification configuration")

	// ErrTaskNameEmpty indicates a task was created without a display name.
	ErrTaskNameEmpty = errors.New("task name is required")

	// ErrTaskDurationInvalid indicates a task duration that is zero or negative.
	ErrTaskDurationInvalid = errors.New("task duration must be positive")

	// ErrReminderIntervalInvalid indicates a negative reminder interval.
	// Zero is valid and disables reminders.
	ErrReminderIntervalInvalid = errors.New("reminder interval cannot be negative")

	// ErrTaskNotFound indicates the requested task id is not in the list.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDuplicateTaskID indicates a task id collision within the list.
	ErrDuplicateTaskID = errors.New("duplicate task id")

	// ErrNoTasks indicates an operation that requires at least one task
	// was attempted on an empty list.
	ErrNoTasks = errors.New("no tasks defined")

	// ErrTaskIndexOutOfRange indicates an active index outside the task list.
	ErrTaskIndexOutOfRange = errors.New("task index out of range")

	// ErrInvalidTransition indicates an attempt to make an invalid run state
	// transition.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrSourceClosed indicates a command was issued to a clock source that
	// has already been closed. Closed sources process no further messages.
	ErrSourceClosed = errors.New("clock source closed")

	// ErrSoundNotFound indicates a sound id that is not in the catalog.
	// Callers typically fall back to the catalog's first entry instead of
	// surfacing this error.
	ErrSoundNotFound = errors.New("sound not found in catalog")

	// ErrPlayerUnavailable indicates no audio player command could be found
	// on this system. Playback degrades to the terminal bell.
	ErrPlayerUnavailable = errors.New("no audio player available")

	// ErrSpeechUnavailable indicates no text-to-speech command could be
	// found on this system. Speech is skipped.
	ErrSpeechUnavailable = errors.New("no speech synthesizer available")

	// ErrNotifierUnavailable indicates no desktop notifier command could be
	// found on this system. Notification permission is treated as denied.
	ErrNotifierUnavailable = errors.New("no desktop notifier available")

	// ErrTasksFileInvalid indicates the tasks file could not be parsed.
	ErrTasksFileInvalid = errors.New("invalid tasks file")

	// ErrValueOutOfRange indicates a configuration value outside the
	// allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInteractiveRequired indicates that an interactive prompt is
	// required but stdin is not a terminal.
	ErrInteractiveRequired = errors.New("interactive prompt required")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
