package sound

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
)

// Runner abstracts the audio player subprocess for testing.
// The production implementation blocks until the process exits or its
// context is canceled.
type Runner interface {
	Run(ctx context.Context, bin string, args ...string) error
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// playerCandidate pairs an audio player binary with its argument builder.
type playerCandidate struct {
	bin  string
	args func(asset string) []string
}

// playerCandidates lists known players in preference order.
//
//nolint:gochecknoglobals // Read-only lookup table for player detection
var playerCandidates = []playerCandidate{
	{bin: "paplay", args: func(asset string) []string { return []string{asset} }},
	{bin: "afplay", args: func(asset string) []string { return []string{asset} }},
	{bin: "aplay", args: func(asset string) []string { return []string{"-q", asset} }},
	{bin: "ffplay", args: func(asset string) []string {
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", asset}
	}},
}

// Player plays catalog sounds through an OS audio player. It keeps one live
// playback slot per asset: replaying an asset that is still sounding stops
// the previous playback and starts over, and every playback is capped.
// When no player binary is installed, Play degrades to the terminal bell.
type Player struct {
	log    zerolog.Logger
	runner Runner
	bin    string
	args   func(asset string) []string
	bell   io.Writer
	cap    time.Duration

	mu      sync.Mutex
	playing map[string]*playback
}

// playback is one live slot in the pool. The pointer identity tells the
// reaper goroutine whether its slot has already been taken over.
type playback struct {
	cancel context.CancelFunc
}

// NewPlayer detects an installed audio player and returns a Player.
// Detection failure is not an error; the Player falls back to the bell.
func NewPlayer(log zerolog.Logger) *Player {
	p := &Player{
		log:     log,
		runner:  execRunner{},
		bell:    os.Stdout,
		cap:     constants.PlaybackCap,
		playing: make(map[string]*playback),
	}
	for _, c := range playerCandidates {
		if _, err := exec.LookPath(c.bin); err == nil {
			p.bin = c.bin
			p.args = c.args
			break
		}
	}
	if p.bin == "" {
		log.Debug().Msg("no audio player found, falling back to terminal bell")
	} else {
		log.Debug().Str("player", p.bin).Msg("audio player detected")
	}
	return p
}

// NewPlayerWithRunner creates a Player with an explicit runner and binary.
// This is useful for testing.
func NewPlayerWithRunner(log zerolog.Logger, runner Runner, bin string, args func(string) []string) *Player {
	return &Player{
		log:     log,
		runner:  runner,
		bin:     bin,
		args:    args,
		bell:    io.Discard,
		cap:     constants.PlaybackCap,
		playing: make(map[string]*playback),
	}
}

// SetPlaybackCap overrides the per-playback duration cap. Non-positive
// values are ignored. Call before the first Play.
func (p *Player) SetPlaybackCap(d time.Duration) {
	if d > 0 {
		p.cap = d
	}
}

// Available reports whether a real audio player was detected.
func (p *Player) Available() bool {
	return p.bin != ""
}

// Play starts the sound and returns without waiting for it to finish.
// A play of an asset that is already sounding stops the running playback
// first, so each asset occupies at most one slot.
func (p *Player) Play(ctx context.Context, s domain.Sound) {
	if p.bin == "" {
		p.ringBell()
		return
	}

	playCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cap)
	slot := &playback{cancel: cancel}

	p.mu.Lock()
	if prev, ok := p.playing[s.AssetRef]; ok {
		prev.cancel()
	}
	p.playing[s.AssetRef] = slot
	p.mu.Unlock()

	go func() {
		defer cancel()
		err := p.runner.Run(playCtx, p.bin, p.args(s.AssetRef)...)

		p.mu.Lock()
		if p.playing[s.AssetRef] == slot {
			delete(p.playing, s.AssetRef)
		}
		p.mu.Unlock()

		if err != nil && playCtx.Err() == nil {
			p.log.Warn().Err(err).Str("sound", s.ID).Str("asset", s.AssetRef).Msg("sound playback failed")
		}
	}()
}

// Stop cancels every in-flight playback.
func (p *Player) Stop() {
	p.mu.Lock()
	for asset, slot := range p.playing {
		slot.cancel()
		delete(p.playing, asset)
	}
	p.mu.Unlock()
}

// ringBell writes the terminal bell character, the last-resort audio cue.
func (p *Player) ringBell() {
	if _, err := p.bell.Write([]byte("\a")); err != nil {
		p.log.Debug().Err(err).Msg("terminal bell write failed")
	}
}
