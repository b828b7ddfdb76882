package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/errors"
)

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name string
		from constants.RunStatus
		to   constants.RunStatus
		want bool
	}{
		{"idle starts running", constants.RunStatusIdle, constants.RunStatusRunning, true},
		{"running advances to running", constants.RunStatusRunning, constants.RunStatusRunning, true},
		{"running finishes", constants.RunStatusRunning, constants.RunStatusAllComplete, true},
		{"running resets", constants.RunStatusRunning, constants.RunStatusIdle, true},
		{"all complete restarts", constants.RunStatusAllComplete, constants.RunStatusRunning, true},
		{"all complete resets", constants.RunStatusAllComplete, constants.RunStatusIdle, true},
		{"idle cannot finish", constants.RunStatusIdle, constants.RunStatusAllComplete, false},
		{"idle cannot reset", constants.RunStatusIdle, constants.RunStatusIdle, false},
		{"all complete cannot refinish", constants.RunStatusAllComplete, constants.RunStatusAllComplete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTransition(tt.from, tt.to))
		})
	}
}

func TestCheckTransition(t *testing.T) {
	require.NoError(t, checkTransition(constants.RunStatusIdle, constants.RunStatusRunning))

	err := checkTransition(constants.RunStatusIdle, constants.RunStatusAllComplete)
	require.ErrorIs(t, err, errors.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "idle")
	assert.Contains(t, err.Error(), "all_complete")
}
