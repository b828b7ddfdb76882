package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacebell/pacebell/internal/errors"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("deep work", 1500, 300)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "deep work", task.Name)
	assert.Equal(t, 1500, task.Duration)
	assert.Equal(t, 300, task.ReminderInterval)
	assert.Equal(t, 25*time.Minute, task.DurationSpan())
	assert.False(t, task.RemindersDisabled())

	// Each task gets a distinct id
	other, err := NewTask("break", 300, 0)
	require.NoError(t, err)
	assert.NotEqual(t, task.ID, other.ID)
	assert.True(t, other.RemindersDisabled())
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"valid", Task{ID: "a", Name: "t", Duration: 60, ReminderInterval: 0}, nil},
		{"empty name", Task{ID: "a", Duration: 60}, errors.ErrTaskNameEmpty},
		{"zero duration", Task{ID: "a", Name: "t", Duration: 0}, errors.ErrTaskDurationInvalid},
		{"negative duration", Task{ID: "a", Name: "t", Duration: -5}, errors.ErrTaskDurationInvalid},
		{"negative interval", Task{ID: "a", Name: "t", Duration: 60, ReminderInterval: -1}, errors.ErrReminderIntervalInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateList(t *testing.T) {
	t.Run("unique ids pass", func(t *testing.T) {
		tasks := []Task{
			{ID: "1", Name: "a", Duration: 10},
			{ID: "2", Name: "b", Duration: 20},
		}
		assert.NoError(t, ValidateList(tasks))
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		tasks := []Task{
			{ID: "1", Name: "a", Duration: 10},
			{ID: "1", Name: "b", Duration: 20},
		}
		assert.ErrorIs(t, ValidateList(tasks), errors.ErrDuplicateTaskID)
	})

	t.Run("invalid task rejected", func(t *testing.T) {
		tasks := []Task{{ID: "1", Name: "", Duration: 10}}
		assert.ErrorIs(t, ValidateList(tasks), errors.ErrTaskNameEmpty)
	})

	t.Run("empty list passes", func(t *testing.T) {
		assert.NoError(t, ValidateList(nil))
	})
}

func TestCountdownState(t *testing.T) {
	c := NewCountdownState(300)

	assert.Equal(t, 300, c.Duration)
	assert.Equal(t, 300, c.TimeLeft)
	assert.Equal(t, 0, c.Elapsed())
	assert.False(t, c.Finished())
	assert.False(t, c.CompletionLatched)
	assert.True(t, c.LastReminderFiredAt.IsZero())

	c.TimeLeft = 120
	assert.Equal(t, 180, c.Elapsed())

	c.TimeLeft = 0
	assert.True(t, c.Finished())
}
