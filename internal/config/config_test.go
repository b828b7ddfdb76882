package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
	"github.com/pacebell/pacebell/internal/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))

	assert.True(t, cfg.Sound.Enabled)
	assert.True(t, cfg.Speech.Enabled)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, constants.NotificationDismissTimeout, cfg.Notifications.DismissTimeout)
	assert.Equal(t, constants.PlaybackCap, cfg.Sound.PlaybackCap)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"nil config", nil, errors.ErrConfigNil},
		{"zero playback cap", func(c *Config) { c.Sound.PlaybackCap = 0 }, errors.ErrConfigInvalidSound},
		{"excessive playback cap", func(c *Config) { c.Sound.PlaybackCap = time.Minute }, errors.ErrConfigInvalidSound},
		{"dismiss timeout too short", func(c *Config) { c.Notifications.DismissTimeout = 10 * time.Millisecond }, errors.ErrConfigInvalidNotification},
		{"dismiss timeout too long", func(c *Config) { c.Notifications.DismissTimeout = time.Hour }, errors.ErrConfigInvalidNotification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *Config
			if tt.mutate != nil {
				cfg = DefaultConfig()
				tt.mutate(cfg)
			}
			err := Validate(cfg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)

	yamlBody := `
sound:
  enabled: false
  default_completion_id: glass
notifications:
  dismiss_timeout: 30s
`
	require.NoError(t, os.WriteFile(filepath.Join(home, constants.ConfigFileName), []byte(yamlBody), 0o600))

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.False(t, cfg.Sound.Enabled)
	assert.Equal(t, "glass", cfg.Sound.DefaultCompletionID)
	assert.Equal(t, 30*time.Second, cfg.Notifications.DismissTimeout)
	assert.True(t, cfg.Speech.Enabled, "untouched keys keep their defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	require.NoError(t, os.WriteFile(
		filepath.Join(home, constants.ConfigFileName),
		[]byte("speech:\n  enabled: true\n"), 0o600))

	t.Setenv("PACEBELL_SPEECH_ENABLED", "false")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.False(t, cfg.Speech.Enabled)
}

func TestLoad_InvalidFileValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	require.NoError(t, os.WriteFile(
		filepath.Join(home, constants.ConfigFileName),
		[]byte("notifications:\n  dismiss_timeout: 1ms\n"), 0o600))

	_, err := Load(context.Background())
	require.ErrorIs(t, err, errors.ErrConfigInvalidNotification)
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)

	got, err := FilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, constants.ConfigFileName), got)

	got, err = TasksFilePath(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, constants.TasksFileName), got)

	cfg := DefaultConfig()
	cfg.Tasks.File = "/elsewhere/tasks.yaml"
	got, err = TasksFilePath(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/tasks.yaml", got)
}

func TestLoadTasks(t *testing.T) {
	t.Run("missing file yields empty list", func(t *testing.T) {
		tasks, err := LoadTasks(filepath.Join(t.TempDir(), "tasks.yaml"))
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.yaml")
		want := []domain.Task{
			{ID: "a", Name: "Warm up", Duration: 300, ReminderInterval: 60, ReminderSoundID: "ping", CompletionSoundID: "glass"},
			{ID: "b", Name: "Deep Work", Duration: 1500, ReminderSoundID: "ping", CompletionSoundID: "glass"},
		}

		require.NoError(t, SaveTasks(path, want))
		got, err := LoadTasks(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing ids are generated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.yaml")
		body := "tasks:\n  - name: One\n    duration: 60\n  - name: Two\n    duration: 90\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		tasks, err := LoadTasks(path)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.NotEmpty(t, tasks[0].ID)
		assert.NotEmpty(t, tasks[1].ID)
		assert.NotEqual(t, tasks[0].ID, tasks[1].ID, "hand-written entries must not collide")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tasks: [unclosed"), 0o600))

		_, err := LoadTasks(path)
		require.ErrorIs(t, err, errors.ErrTasksFileInvalid)
	})

	t.Run("invalid task", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.yaml")
		body := "tasks:\n  - id: a\n    name: Bad\n    duration: 0\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		_, err := LoadTasks(path)
		require.ErrorIs(t, err, errors.ErrTasksFileInvalid)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.yaml")
		body := "tasks:\n  - id: a\n    name: One\n    duration: 60\n  - id: a\n    name: Two\n    duration: 60\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		_, err := LoadTasks(path)
		require.ErrorIs(t, err, errors.ErrTasksFileInvalid)
	})

	t.Run("save creates directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.yaml")
		require.NoError(t, SaveTasks(path, nil))
		assert.FileExists(t, path)
	})
}
