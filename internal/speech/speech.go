// Package speech provides text-to-speech announcements for pacebell.
//
// Announcements shell out to the platform TTS command (say on macOS,
// espeak or spd-say on Linux) and are fire-and-forget: a missing or
// failing synthesizer is logged, never surfaced.
package speech

import (
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// speakTimeout bounds one announcement so a hung synthesizer cannot leak
// goroutines.
const speakTimeout = 30 * time.Second

// Runner abstracts the TTS subprocess for testing.
type Runner interface {
	Run(ctx context.Context, bin string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// speakerCandidate pairs a TTS binary with its argument builder.
type speakerCandidate struct {
	bin  string
	args func(text string) []string
}

//nolint:gochecknoglobals // Read-only lookup table for synthesizer detection
var speakerCandidates = []speakerCandidate{
	{bin: "say", args: func(text string) []string { return []string{text} }},
	{bin: "spd-say", args: func(text string) []string { return []string{"-w", text} }},
	{bin: "espeak", args: func(text string) []string { return []string{text} }},
}

// Speaker announces text through the platform synthesizer.
type Speaker struct {
	log    zerolog.Logger
	runner Runner
	bin    string
	args   func(text string) []string
}

// NewSpeaker detects an installed synthesizer. The returned Speaker is
// usable either way; Speak silently does nothing when none was found.
func NewSpeaker(log zerolog.Logger) *Speaker {
	s := &Speaker{log: log, runner: execRunner{}}
	for _, c := range speakerCandidates {
		if _, err := exec.LookPath(c.bin); err == nil {
			s.bin = c.bin
			s.args = c.args
			break
		}
	}
	if s.bin == "" {
		log.Debug().Msg("no speech synthesizer found")
	} else {
		log.Debug().Str("synthesizer", s.bin).Msg("speech synthesizer detected")
	}
	return s
}

// NewSpeakerWithRunner creates a Speaker with an explicit runner and
// binary. This is useful for testing.
func NewSpeakerWithRunner(log zerolog.Logger, runner Runner, bin string, args func(string) []string) *Speaker {
	return &Speaker{log: log, runner: runner, bin: bin, args: args}
}

// Available reports whether a synthesizer binary was detected.
func (s *Speaker) Available() bool {
	return s.bin != ""
}

// Speak announces the text and returns immediately. Failures are logged.
func (s *Speaker) Speak(ctx context.Context, text string) {
	if s.bin == "" || text == "" {
		return
	}

	speakCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), speakTimeout)
	go func() {
		defer cancel()
		if err := s.runner.Run(speakCtx, s.bin, s.args(text)...); err != nil && speakCtx.Err() == nil {
			s.log.Warn().Err(err).Str("text", text).Msg("speech announcement failed")
		}
	}()
}
