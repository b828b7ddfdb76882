package config

import (
	"time"

	"github.com/pacebell/pacebell/internal/errors"
)

// Validate checks the configuration for invalid values and returns an
// error describing the first failure found.
//
// Validation rules:
//   - Sound playback cap must be positive and at most 30 seconds
//   - Notification dismiss timeout must be between 1 second and 5 minutes
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSoundConfig(&cfg.Sound); err != nil {
		return err
	}
	return validateNotificationConfig(&cfg.Notifications)
}

func validateSoundConfig(cfg *SoundConfig) error {
	const maxPlaybackCap = 30 * time.Second

	if cfg.PlaybackCap <= 0 || cfg.PlaybackCap > maxPlaybackCap {
		return errors.Wrapf(errors.ErrConfigInvalidSound,
			"sound.playback_cap must be between 0 and %s, got %s", maxPlaybackCap, cfg.PlaybackCap)
	}
	return nil
}

func validateNotificationConfig(cfg *NotificationConfig) error {
	const (
		minDismiss = time.Second
		maxDismiss = 5 * time.Minute
	)

	if cfg.DismissTimeout < minDismiss || cfg.DismissTimeout > maxDismiss {
		return errors.Wrapf(errors.ErrConfigInvalidNotification,
			"notifications.dismiss_timeout must be between %s and %s, got %s",
			minDismiss, maxDismiss, cfg.DismissTimeout)
	}
	return nil
}
