package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidOutputFormat,
		ErrConfigNil,
		ErrTaskNameEmpty,
		ErrTaskDurationInvalid,
		ErrReminderIntervalInvalid,
		ErrTaskNotFound,
		ErrDuplicateTaskID,
		ErrNoTasks,
		ErrInvalidTransition,
		ErrSourceClosed,
		ErrSoundNotFound,
		ErrPlayerUnavailable,
		ErrSpeechUnavailable,
		ErrNotifierUnavailable,
	}

	seen := make(map[string]bool, len(sentinels))
	for _, err := range sentinels {
		require.Error(t, err)
		assert.False(t, seen[err.Error()], "duplicate sentinel message: %s", err.Error())
		seen[err.Error()] = true
	}
}

func TestSentinelErrors_WrapAndIs(t *testing.T) {
	wrapped := fmt.Errorf("starting task: %w", ErrTaskNotFound)
	assert.True(t, stderrors.Is(wrapped, ErrTaskNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrNoTasks))
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("adds context and preserves chain", func(t *testing.T) {
		err := Wrap(ErrSoundNotFound, "resolving reminder sound")
		require.Error(t, err)
		assert.Equal(t, "resolving reminder sound: sound not found in catalog", err.Error())
		assert.True(t, stderrors.Is(err, ErrSoundNotFound))
	})
}

func TestWrapf(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "task %s", "abc"))
	})

	t.Run("formats context", func(t *testing.T) {
		err := Wrapf(ErrTaskNotFound, "removing task %q", "deep-work")
		require.Error(t, err)
		assert.Equal(t, `removing task "deep-work": task not found`, err.Error())
		assert.True(t, stderrors.Is(err, ErrTaskNotFound))
	})
}

func TestExitCode2Error(t *testing.T) {
	inner := ErrInteractiveRequired
	err := NewExitCode2Error(inner)

	assert.Equal(t, inner.Error(), err.Error())
	assert.True(t, IsExitCode2Error(err))
	assert.True(t, stderrors.Is(err, inner))

	// Wrapping preserves detection
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsExitCode2Error(wrapped))

	// Plain errors are not exit code 2
	assert.False(t, IsExitCode2Error(inner))
	assert.False(t, IsExitCode2Error(nil))
}
