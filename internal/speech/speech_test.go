package speech

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, args[len(args)-1])
	return nil
}

func (f *fakeRunner) spoken() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.texts))
	copy(out, f.texts)
	return out
}

func TestSpeaker_Speak(t *testing.T) {
	runner := &fakeRunner{}
	s := NewSpeakerWithRunner(zerolog.Nop(), runner, "say", func(text string) []string {
		return []string{text}
	})

	require.True(t, s.Available())
	s.Speak(context.Background(), "Deep Work")

	require.Eventually(t, func() bool {
		return len(runner.spoken()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, []string{"Deep Work"}, runner.spoken())
}

func TestSpeaker_SkipsEmptyText(t *testing.T) {
	runner := &fakeRunner{}
	s := NewSpeakerWithRunner(zerolog.Nop(), runner, "say", func(text string) []string {
		return []string{text}
	})

	s.Speak(context.Background(), "")
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, runner.spoken())
}

func TestSpeaker_UnavailableIsSilent(t *testing.T) {
	s := NewSpeakerWithRunner(zerolog.Nop(), nil, "", nil)

	assert.False(t, s.Available())
	s.Speak(context.Background(), "nothing happens")
}
