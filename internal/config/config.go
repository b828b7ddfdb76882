// Package config provides configuration management for pacebell.
//
// Configuration merges three layers, highest precedence first: environment
// variables (PACEBELL_*), the config file (~/.pacebell/config.yaml), and
// built-in defaults. The task list lives in its own file (tasks.yaml) and
// is loaded separately at startup.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/cli, internal/tui, internal/sequencer
package config

import (
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Sound         SoundConfig        `mapstructure:"sound" yaml:"sound"`
	Speech        SpeechConfig       `mapstructure:"speech" yaml:"speech"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
	Tasks         TasksConfig        `mapstructure:"tasks" yaml:"tasks"`
}

// SoundConfig controls cue sound playback.
type SoundConfig struct {
	// Enabled turns sound playback on or off entirely.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// DefaultReminderID is the catalog sound used when a task names no
	// reminder sound.
	DefaultReminderID string `mapstructure:"default_reminder_id" yaml:"default_reminder_id"`

	// DefaultCompletionID is the catalog sound used when a task names no
	// completion sound.
	DefaultCompletionID string `mapstructure:"default_completion_id" yaml:"default_completion_id"`

	// PlaybackCap bounds how long one playback may sound.
	PlaybackCap time.Duration `mapstructure:"playback_cap" yaml:"playback_cap"`
}

// SpeechConfig controls spoken announcements.
type SpeechConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// NotificationConfig controls desktop notifications.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// DismissTimeout is how long a notification stays up before
	// auto-dismissing.
	DismissTimeout time.Duration `mapstructure:"dismiss_timeout" yaml:"dismiss_timeout"`
}

// TasksConfig locates the task list file.
type TasksConfig struct {
	// File overrides the task list path. Empty means
	// ~/.pacebell/tasks.yaml.
	File string `mapstructure:"file" yaml:"file"`
}
