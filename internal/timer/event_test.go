package timer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The command/event message shapes are the wire contract between the
// controller and the background worker. These assertions pin the exact
// field names so a change in either direction fails loudly.
func TestWireFormat_Commands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			"start carries full handoff payload",
			NewStartCommand(300, 300, 60),
			`{"action":"start","data":{"duration":300,"timeLeft":300,"recurrentTime":60}}`,
		},
		{
			"start with mid-flight handoff",
			NewStartCommand(300, 120, 60),
			`{"action":"start","data":{"duration":300,"timeLeft":120,"recurrentTime":60}}`,
		},
		{
			"pause has no payload",
			NewPauseCommand(),
			`{"action":"pause"}`,
		},
		{
			"reset carries duration only",
			NewResetCommand(300),
			`{"action":"reset","data":{"duration":300}}`,
		},
		{
			"update omits timeLeft when nil",
			NewUpdateCommand(600, 120, nil),
			`{"action":"update","data":{"duration":600,"recurrentTime":120}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.cmd)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
			assert.Equal(t, tt.want, string(raw), "field order must match the wire contract")
		})
	}
}

func TestWireFormat_Events(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			"tick",
			NewTickEvent(299),
			`{"type":"tick","data":{"timeLeft":299}}`,
		},
		{
			"final tick serializes zero",
			NewTickEvent(0),
			`{"type":"tick","data":{"timeLeft":0}}`,
		},
		{
			"recurrent notification",
			NewRecurrentEvent(60),
			`{"type":"notification","data":{"type":"recurrent","elapsed":60}}`,
		},
		{
			"final minute notification",
			NewFinalMinuteEvent(),
			`{"type":"notification","data":{"type":"finalMinute"}}`,
		},
		{
			"complete has no payload",
			NewCompleteEvent(),
			`{"type":"complete"}`,
		},
		{
			"reset confirms restored timeLeft",
			NewResetEvent(300),
			`{"type":"reset","data":{"timeLeft":300}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.ev)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestWireFormat_CommandRoundTrip(t *testing.T) {
	raw := `{"action":"update","data":{"duration":600,"recurrentTime":120,"timeLeft":450}}`

	var cmd Command
	require.NoError(t, json.Unmarshal([]byte(raw), &cmd))

	assert.Equal(t, ActionUpdate, cmd.Action)
	require.NotNil(t, cmd.Data)
	assert.Equal(t, 600, cmd.Data.Duration)
	assert.Equal(t, 120, cmd.Data.RecurrentTime)
	require.NotNil(t, cmd.Data.TimeLeft)
	assert.Equal(t, 450, *cmd.Data.TimeLeft)
}
