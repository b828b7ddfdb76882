package constants

// RunStatus represents the top-level state of a timer run.
// Status values use snake_case for JSON serialization compatibility.
type RunStatus string

// Run status constants define the valid states of the task sequencer.
// Exactly one run status holds at any time:
//
//	Idle → Running
//	Running → Running (task switch or advance), AllComplete, Idle
//	AllComplete → Running, Idle
const (
	// RunStatusIdle indicates no task is selected and nothing is counting down.
	RunStatusIdle RunStatus = "idle"

	// RunStatusRunning indicates an active task is counting down.
	RunStatusRunning RunStatus = "running"

	// RunStatusAllComplete indicates every task in the list has finished its
	// cycle since the last reset.
	RunStatusAllComplete RunStatus = "all_complete"
)

// String returns the string representation of the RunStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s RunStatus) String() string {
	return string(s)
}

// SoundPurpose distinguishes the two sound catalogs.
type SoundPurpose string

// Sound purpose constants.
const (
	// SoundPurposeReminder selects the catalog of periodic reminder cues.
	SoundPurposeReminder SoundPurpose = "reminder"

	// SoundPurposeCompletion selects the catalog of task completion cues.
	SoundPurposeCompletion SoundPurpose = "completion"
)

// String returns the string representation of the SoundPurpose.
func (p SoundPurpose) String() string {
	return string(p)
}
