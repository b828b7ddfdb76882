package config

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/errors"
)

// newViperInstance creates a Viper instance with defaults and PACEBELL_*
// environment binding.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true for viper's missing-config-file error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// viperDecoderOption configures mapstructure to parse time.Duration from
// strings like "10s".
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

// Load reads configuration with proper precedence, highest first:
//  1. Environment variables (PACEBELL_* prefix)
//  2. Config file (~/.pacebell/config.yaml)
//  3. Built-in defaults
//
// A missing config file is not an error; many installs never create one.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if path, err := FilePath(); err == nil && fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Bool("sound.enabled", cfg.Sound.Enabled).
		Bool("speech.enabled", cfg.Speech.Enabled).
		Dur("notifications.dismiss_timeout", cfg.Notifications.DismissTimeout).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}
