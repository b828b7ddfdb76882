package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pacebell/pacebell/internal/constants"
)

// HomeDir returns the pacebell home directory: $PACEBELL_HOME when set,
// ~/.pacebell otherwise.
func HomeDir() (string, error) {
	if home := os.Getenv(constants.HomeEnvVar); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, constants.PacebellHome), nil
}

// FilePath returns the path of the config file.
func FilePath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.ConfigFileName), nil
}

// TasksFilePath returns the path of the task list file, honoring the
// config override when set.
func TasksFilePath(cfg *Config) (string, error) {
	if cfg != nil && cfg.Tasks.File != "" {
		return cfg.Tasks.File, nil
	}

	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.TasksFileName), nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
