// Package constants provides shared constants for the pacebell timer.
//
// This package centralizes timing constants, paths, and defaults so that
// the countdown engine, ritual executor, and CLI all agree on the same
// values. It MUST NOT import any other internal packages.
package constants

import "time"

// Application identity constants.
const (
	// AppName is the canonical application name used in notifications and logs.
	AppName = "pacebell"

	// PacebellHome is the directory name for pacebell data under the user's
	// home directory (~/.pacebell).
	PacebellHome = ".pacebell"

	// HomeEnvVar overrides the pacebell home directory when set.
	HomeEnvVar = "PACEBELL_HOME"

	// EnvPrefix is the prefix for environment variable configuration
	// (e.g., PACEBELL_VERBOSE).
	EnvPrefix = "PACEBELL"
)

// Countdown timing constants.
//
// These values come from the notification sequencing design: a short settle
// delay separates the audio cue from speech so the two never overlap, and a
// debounce window keeps periodic reminders from double-firing when ticks
// arrive with jitter.
const (
	// TickInterval is the countdown granularity. The engine decrements
	// timeLeft once per tick.
	TickInterval = time.Second

	// ReminderDebounce is the minimum real-time spacing between consecutive
	// reminder fires, regardless of the configured reminder interval.
	ReminderDebounce = 5 * time.Second

	// FinalMinuteMark is the timeLeft value (in seconds) at which the
	// final-minute warning fires. It fires at most once per countdown since
	// timeLeft passes through this value exactly once.
	FinalMinuteMark = 60

	// SettleDelay is the pause between the audio cue and speech within a
	// notification ritual. Chosen to roughly match cue playback time.
	SettleDelay = 5 * time.Second

	// CompletionExtraDelay is the additional pause after speech in the
	// completion ritual, before the done signal fires.
	CompletionExtraDelay = 3 * time.Second

	// AllCompleteAnnounceDelay is the pause before the final "all tasks
	// completed" announcement.
	AllCompleteAnnounceDelay = time.Second
)

// Sound playback constants.
const (
	// PlaybackCap truncates sound playback regardless of asset length.
	// Cues are short; anything longer than this is cut off.
	PlaybackCap = 5 * time.Second
)

// Notification constants.
const (
	// NotificationDismissTimeout is the default auto-dismiss timeout for
	// desktop notifications.
	NotificationDismissTimeout = 10 * time.Second
)

// Logging constants for the rotating CLI log file.
const (
	// LogsDir is the subdirectory under pacebell home for log files.
	LogsDir = "logs"

	// CLILogFileName is the filename for the CLI log.
	CLILogFileName = "pacebell.log"

	// LogMaxSizeMB is the maximum log file size before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// File names under the pacebell home directory.
const (
	// ConfigFileName is the YAML configuration file name.
	ConfigFileName = "config.yaml"

	// TasksFileName is the YAML task list file name.
	TasksFileName = "tasks.yaml"
)
