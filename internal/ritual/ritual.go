// Package ritual executes the cue pipeline that fires when a countdown
// crosses a reminder, the final minute, or completion.
//
// A ritual is a fixed, ordered list of steps. Each step carries a skip
// predicate evaluated at the moment the step runs, since visibility can
// change mid-ritual. Step failures are logged and never propagated, so a
// broken speaker or notifier cannot stall the countdown: the completion
// ritual in particular always reaches its done signal.
//
// Import rules:
//   - CAN import: internal/clock, internal/constants, internal/domain,
//     internal/errors, std lib
//   - MUST NOT import: internal/sequencer, internal/tui, internal/cli
package ritual

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pacebell/pacebell/internal/clock"
	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
)

// finalMinuteMessage is the announcement body for the final-minute cue.
const finalMinuteMessage = "One minute remaining"

// Catalog resolves sound ids against the sound catalog.
type Catalog interface {
	Resolve(purpose constants.SoundPurpose, id string) domain.Sound
}

// Player starts sound playback without waiting for it to finish.
type Player interface {
	Play(ctx context.Context, s domain.Sound)
}

// Notifier raises a desktop notification.
type Notifier interface {
	Raise(ctx context.Context, title, body string) error
}

// Speaker announces text, fire-and-forget.
type Speaker interface {
	Speak(ctx context.Context, text string)
}

// Visibility reports whether the user is looking at the app.
type Visibility interface {
	Visible() bool
}

// Permission reports whether desktop notifications may be raised.
type Permission interface {
	Granted() bool
}

// Executor runs cue rituals. Rituals are not serialized against each
// other; two overlapping rituals interleave their steps freely.
type Executor struct {
	log        zerolog.Logger
	catalog    Catalog
	player     Player
	notifier   Notifier
	speaker    Speaker
	visibility Visibility
	permission Permission
	delay      clock.Delayer
	quiet      bool
}

// Options configures an Executor.
type Options struct {
	Catalog    Catalog
	Player     Player
	Notifier   Notifier
	Speaker    Speaker
	Visibility Visibility
	Permission Permission
	Delayer    clock.Delayer

	// Quiet suppresses sound and speech; notifications still fire.
	Quiet bool
}

// NewExecutor creates a ritual executor.
func NewExecutor(log zerolog.Logger, opts Options) *Executor {
	return &Executor{
		log:        log,
		catalog:    opts.Catalog,
		player:     opts.Player,
		notifier:   opts.Notifier,
		speaker:    opts.Speaker,
		visibility: opts.Visibility,
		permission: opts.Permission,
		delay:      opts.Delayer,
		quiet:      opts.Quiet,
	}
}

// cue is the material one ritual works with.
type cue struct {
	kind    string
	title   string
	message string
	soundID string
	purpose constants.SoundPurpose
}

// step is one stage of a ritual. skip is evaluated immediately before run;
// a nil skip means the step always runs.
type step struct {
	name string
	skip func() bool
	run  func(ctx context.Context) error
}

// RunReminder executes the recurring reminder ritual: reminder sound, then
// a notification when the app is not visible, then after the settle delay
// a spoken reminder when it is.
func (e *Executor) RunReminder(ctx context.Context, title, message, soundID string) error {
	return e.run(ctx, cue{
		kind:    "reminder",
		title:   title,
		message: message,
		soundID: soundID,
		purpose: constants.SoundPurposeReminder,
	}, false)
}

// RunFinalMinute executes the final-minute ritual. The message is fixed;
// the sound is the task's reminder sound.
func (e *Executor) RunFinalMinute(ctx context.Context, title, soundID string) error {
	return e.run(ctx, cue{
		kind:    "final_minute",
		title:   title,
		message: finalMinuteMessage,
		soundID: soundID,
		purpose: constants.SoundPurposeReminder,
	}, false)
}

// RunCompletion executes the completion ritual and returns once the done
// signal fires: after the settle delay, the announcement, and the extra
// linger delay. Subsystem failures along the way are logged and skipped,
// never allowed to keep the signal from firing.
func (e *Executor) RunCompletion(ctx context.Context, title, message, soundID string) error {
	return e.run(ctx, cue{
		kind:    "completion",
		title:   title,
		message: message,
		soundID: soundID,
		purpose: constants.SoundPurposeCompletion,
	}, true)
}

// run walks the pipeline for one cue. Only context cancellation aborts;
// every other failure downgrades to a warning and the walk continues.
func (e *Executor) run(ctx context.Context, c cue, completion bool) error {
	steps := e.steps(c, completion)

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.skip != nil && s.skip() {
			e.log.Debug().Str("ritual", c.kind).Str("step", s.name).Msg("ritual step skipped")
			continue
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.log.Warn().Err(err).Str("ritual", c.kind).Str("step", s.name).Msg("ritual step failed")
		}
	}

	e.log.Debug().Str("ritual", c.kind).Str("task", c.title).Msg("ritual done")
	return nil
}

// steps builds the pipeline for a cue. Order is fixed: sound, notification,
// settle delay, speech, and for completions the extra linger delay.
func (e *Executor) steps(c cue, completion bool) []step {
	steps := []step{
		{
			name: "play_sound",
			skip: func() bool { return e.quiet },
			run: func(ctx context.Context) error {
				e.player.Play(ctx, e.catalog.Resolve(c.purpose, c.soundID))
				return nil
			},
		},
		{
			name: "notify",
			// A visible app speaks instead; a denied permission cannot notify.
			skip: func() bool { return e.visibility.Visible() || !e.permission.Granted() },
			run: func(ctx context.Context) error {
				return e.notifier.Raise(ctx, c.title, c.message)
			},
		},
		{
			name: "settle",
			run: func(ctx context.Context) error {
				return e.delay.Sleep(ctx, constants.SettleDelay)
			},
		},
		{
			name: "speak",
			skip: func() bool { return e.quiet || !e.visibility.Visible() },
			run: func(ctx context.Context) error {
				e.speaker.Speak(ctx, c.message)
				return nil
			},
		},
	}

	if completion {
		steps = append(steps, step{
			name: "linger",
			run: func(ctx context.Context) error {
				return e.delay.Sleep(ctx, constants.CompletionExtraDelay)
			},
		})
	}

	return steps
}
