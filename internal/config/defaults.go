package config

import (
	"github.com/spf13/viper"

	"github.com/pacebell/pacebell/internal/constants"
)

// DefaultConfig returns a Config with the built-in defaults. These form
// the base layer that config files and environment variables override.
func DefaultConfig() *Config {
	return &Config{
		Sound: SoundConfig{
			Enabled: true,

			// Empty ids mean "first catalog entry", so the defaults work
			// on any platform without naming a platform-specific sound.
			DefaultReminderID:   "",
			DefaultCompletionID: "",

			PlaybackCap: constants.PlaybackCap,
		},
		Speech: SpeechConfig{
			Enabled: true,
		},
		Notifications: NotificationConfig{
			Enabled:        true,
			DismissTimeout: constants.NotificationDismissTimeout,
		},
		Tasks: TasksConfig{
			File: "",
		},
	}
}

// setDefaults registers the default values on a viper instance so keys
// absent from the config file resolve to them.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("sound.enabled", def.Sound.Enabled)
	v.SetDefault("sound.default_reminder_id", def.Sound.DefaultReminderID)
	v.SetDefault("sound.default_completion_id", def.Sound.DefaultCompletionID)
	v.SetDefault("sound.playback_cap", def.Sound.PlaybackCap)
	v.SetDefault("speech.enabled", def.Speech.Enabled)
	v.SetDefault("notifications.enabled", def.Notifications.Enabled)
	v.SetDefault("notifications.dismiss_timeout", def.Notifications.DismissTimeout)
	v.SetDefault("tasks.file", def.Tasks.File)
}
