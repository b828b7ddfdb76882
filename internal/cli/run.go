package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pacebell/pacebell/internal/clock"
	"github.com/pacebell/pacebell/internal/config"
	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
	"github.com/pacebell/pacebell/internal/errors"
	"github.com/pacebell/pacebell/internal/notify"
	"github.com/pacebell/pacebell/internal/ritual"
	"github.com/pacebell/pacebell/internal/sequencer"
	"github.com/pacebell/pacebell/internal/signal"
	"github.com/pacebell/pacebell/internal/sound"
	"github.com/pacebell/pacebell/internal/speech"
	"github.com/pacebell/pacebell/internal/timer"
	"github.com/pacebell/pacebell/internal/tui"
	"github.com/pacebell/pacebell/internal/visibility"
)

// runFlags holds the flags for the run command.
type runFlags struct {
	autostart bool
}

// newRunCmd creates the run command, the interactive timer screen.
func newRunCmd(flags *GlobalFlags) *cobra.Command {
	rf := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the task timer",
		Long: `Run the interactive timer over the configured task list.

The countdown keeps going while the terminal is unfocused: ticking hands
off to a background worker on blur and back to the interactive ticker on
focus, without losing or double-counting a second.

Keys:
  enter   start the selected task
  space   pause / resume
  r       reset to idle
  j/k     move the selection
  q       quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd.Context(), flags, rf)
		},
	}

	cmd.Flags().BoolVar(&rf.autostart, "autostart", false, "start the first task immediately")

	return cmd
}

// focusSwitcher reacts to terminal focus changes. It drives the visibility
// monitor and hands the countdown off between the interactive ticker
// (focused) and the background worker (blurred).
type focusSwitcher struct {
	monitor *visibility.Monitor
	seq     *sequencer.Sequencer
	ticker  timer.Source
	worker  timer.Source
}

// Set implements tui.FocusSink.
func (f *focusSwitcher) Set(visible bool) {
	f.monitor.Set(visible)

	next := f.worker
	if visible {
		next = f.ticker
	}
	_ = f.seq.Handoff(next)
}

// mutedSpeaker replaces the speech synthesizer when speech is disabled
// in the configuration.
type mutedSpeaker struct{}

// Speak discards the announcement.
func (mutedSpeaker) Speak(_ context.Context, _ string) {}

// mutedPlayer replaces the audio player when sound is disabled in the
// configuration. Unlike the --quiet flag, this leaves speech alone.
type mutedPlayer struct{}

// Play discards the cue sound.
func (mutedPlayer) Play(_ context.Context, _ domain.Sound) {}

// runRun wires the whole timer together and runs the Bubble Tea program
// alongside the sequencer event loop.
func runRun(ctx context.Context, flags *GlobalFlags, rf *runFlags) error {
	logger := GetLogger()
	tui.CheckNoColor()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	tasksPath, err := config.TasksFilePath(cfg)
	if err != nil {
		return err
	}
	tasks, err := config.LoadTasks(tasksPath)
	if err != nil {
		return err
	}

	catalog := sound.DefaultCatalog()

	player := sound.NewPlayer(logger)
	player.SetPlaybackCap(cfg.Sound.PlaybackCap)
	defer player.Stop()
	if cfg.Sound.Enabled && !player.Available() {
		logger.Warn().Err(errors.ErrPlayerUnavailable).Msg("sound cues degrade to the terminal bell")
	}

	notifier := notify.NewNotifier(logger, int(cfg.Notifications.DismissTimeout.Milliseconds()))
	gate := notify.NewGate(notifier)
	if cfg.Notifications.Enabled {
		granted, _ := gate.Request(ctx)
		logger.Debug().Bool("granted", granted).Msg("notification permission resolved")
	}

	speaker := speech.NewSpeaker(logger)
	if cfg.Speech.Enabled && !speaker.Available() {
		logger.Warn().Err(errors.ErrSpeechUnavailable).Msg("spoken announcements disabled")
	}
	monitor := visibility.NewMonitor(true)
	clk := clock.RealClock{}

	ticker := timer.NewTickerSource(clk)
	defer ticker.Close()
	worker := timer.NewWorkerSource(clk)
	defer worker.Close()

	var ritualSpeaker ritual.Speaker = speaker
	var seqSpeaker sequencer.Speaker = speaker
	if !cfg.Speech.Enabled {
		muted := mutedSpeaker{}
		ritualSpeaker = muted
		seqSpeaker = muted
	}

	var ritualPlayer ritual.Player = player
	if !cfg.Sound.Enabled {
		ritualPlayer = mutedPlayer{}
	}

	exec := ritual.NewExecutor(logger, ritual.Options{
		Catalog:    catalog,
		Player:     ritualPlayer,
		Notifier:   notifier,
		Speaker:    ritualSpeaker,
		Visibility: monitor,
		Permission: gate,
		Delayer:    clk,
		Quiet:      flags.Quiet,
	})

	var program *tea.Program

	seq, err := sequencer.New(logger, sequencer.Options{
		Source:                   ticker,
		Ritual:                   exec,
		Speaker:                  seqSpeaker,
		Delayer:                  clk,
		Tasks:                    tasks,
		DefaultReminderSoundID:   catalog.Resolve(constants.SoundPurposeReminder, cfg.Sound.DefaultReminderID).ID,
		DefaultCompletionSoundID: catalog.Resolve(constants.SoundPurposeCompletion, cfg.Sound.DefaultCompletionID).ID,
		OnChange: func(snap sequencer.Snapshot) {
			if program != nil {
				program.Send(tui.SnapshotMsg(snap))
			}
		},
	})
	if err != nil {
		return err
	}

	handler := signal.NewHandler(ctx)
	defer handler.Stop()

	runCtx, cancel := context.WithCancel(handler.Context())
	defer cancel()

	focus := &focusSwitcher{monitor: monitor, seq: seq, ticker: ticker, worker: worker}
	model := tui.NewModel(seq, focus)

	program = tea.NewProgram(model,
		tea.WithContext(runCtx),
		tea.WithReportFocus(),
	)

	if rf.autostart && len(tasks) > 0 {
		if startErr := seq.StartTask(0); startErr != nil {
			return startErr
		}
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		runErr := seq.Run(gctx)
		if runErr != nil && !isShutdownError(runErr) {
			return fmt.Errorf("sequencer stopped: %w", runErr)
		}
		return nil
	})
	g.Go(func() error {
		// Quitting the UI ends the session; stop the sequencer too.
		defer cancel()
		_, runErr := program.Run()
		if runErr != nil && !isShutdownError(runErr) {
			return fmt.Errorf("ui stopped: %w", runErr)
		}
		return nil
	})

	return g.Wait()
}

// isShutdownError reports whether an error is an expected teardown
// artifact rather than a failure.
func isShutdownError(err error) bool {
	return stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, tea.ErrProgramKilled) ||
		stderrors.Is(err, errors.ErrSourceClosed)
}
