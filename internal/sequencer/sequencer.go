package sequencer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pacebell/pacebell/internal/clock"
	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
	"github.com/pacebell/pacebell/internal/errors"
	"github.com/pacebell/pacebell/internal/timer"
)

// allCompleteMessage is announced once the last task finishes.
const allCompleteMessage = "All tasks completed"

// RitualRunner executes cue rituals. RunCompletion blocks until the
// ritual's done signal; the sequencer always calls it on its own goroutine.
type RitualRunner interface {
	RunReminder(ctx context.Context, title, message, soundID string) error
	RunFinalMinute(ctx context.Context, title, soundID string) error
	RunCompletion(ctx context.Context, title, message, soundID string) error
}

// Speaker announces text, fire-and-forget. The sequencer speaks directly
// (outside any ritual) when advancing to the next task and when the whole
// list completes.
type Speaker interface {
	Speak(ctx context.Context, text string)
}

// Snapshot is the sequencer's externally visible state, published to the
// UI after every change.
type Snapshot struct {
	Status   constants.RunStatus
	Tasks    []domain.Task
	Active   int
	TimeLeft int
	Paused   bool
}

// ActiveTask returns the active task, or false when the list is empty.
func (s Snapshot) ActiveTask() (domain.Task, bool) {
	if len(s.Tasks) == 0 || s.Active < 0 || s.Active >= len(s.Tasks) {
		return domain.Task{}, false
	}
	return s.Tasks[s.Active], true
}

// Options configures a Sequencer.
type Options struct {
	Source  timer.Source
	Ritual  RitualRunner
	Speaker Speaker
	Delayer clock.Delayer

	// Tasks is the initial task list, validated on construction.
	Tasks []domain.Task

	// Default sound ids applied by AddTask when a task names none.
	DefaultReminderSoundID   string
	DefaultCompletionSoundID string

	// OnChange receives a snapshot after every state change. Called
	// outside the sequencer lock, possibly from several goroutines.
	OnChange func(Snapshot)
}

// Sequencer walks the task list front to back. One task is active at a
// time; its countdown runs on the attached clock source and the sequencer
// reacts to the source's event stream.
type Sequencer struct {
	log     zerolog.Logger
	ritual  RitualRunner
	speaker Speaker
	delay   clock.Delayer
	change  func(Snapshot)

	defaultReminderSound   string
	defaultCompletionSound string

	mu                sync.Mutex
	tasks             []domain.Task
	active            int
	status            constants.RunStatus
	source            timer.Source
	lastTimeLeft      int
	paused            bool
	completionLatched bool
	runCtx            context.Context

	// generation numbers the current task activation. Every Start, Reset,
	// and advance bumps it; an in-flight completion only lands if the
	// activation it latched against is still the live one.
	generation uint64

	// wake interrupts the event loop so it re-reads the source channel
	// after a handoff.
	wake chan struct{}
}

// New creates a Sequencer in the Idle state.
func New(log zerolog.Logger, opts Options) (*Sequencer, error) {
	if err := domain.ValidateList(opts.Tasks); err != nil {
		return nil, err
	}

	s := &Sequencer{
		log:                    log,
		ritual:                 opts.Ritual,
		speaker:                opts.Speaker,
		delay:                  opts.Delayer,
		change:                 opts.OnChange,
		defaultReminderSound:   opts.DefaultReminderSoundID,
		defaultCompletionSound: opts.DefaultCompletionSoundID,
		tasks:                  append([]domain.Task(nil), opts.Tasks...),
		status:                 constants.RunStatusIdle,
		source:                 opts.Source,
		runCtx:                 context.Background(),
		wake:                   make(chan struct{}, 1),
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Sequencer) snapshotLocked() Snapshot {
	return Snapshot{
		Status:   s.status,
		Tasks:    append([]domain.Task(nil), s.tasks...),
		Active:   s.active,
		TimeLeft: s.lastTimeLeft,
		Paused:   s.paused,
	}
}

// publish sends a snapshot to the change listener. Never called under s.mu.
func (s *Sequencer) publish(snap Snapshot) {
	if s.change != nil {
		s.change(snap)
	}
}

// AddTask validates and appends a task. Tasks without sound ids get the
// catalog defaults. Adding to a finished list reopens it to Idle so the
// new task can be started.
func (s *Sequencer) AddTask(t domain.Task) error {
	if t.ReminderSoundID == "" {
		t.ReminderSoundID = s.defaultReminderSound
	}
	if t.CompletionSoundID == "" {
		t.CompletionSoundID = s.defaultCompletionSound
	}
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	for _, existing := range s.tasks {
		if existing.ID == t.ID {
			s.mu.Unlock()
			return errors.Wrapf(errors.ErrDuplicateTaskID, "task %q", t.ID)
		}
	}
	s.tasks = append(s.tasks, t)
	if s.status == constants.RunStatusAllComplete {
		s.status = constants.RunStatusIdle
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug().Str("task_id", t.ID).Str("name", t.Name).Msg("task added")
	s.publish(snap)
	return nil
}

// EditTask replaces the task with the same id in place. Editing the active
// task of a running sequencer retimes the live countdown: the new duration
// and reminder interval take effect immediately, the position stays where
// it is, clamped to the new duration.
func (s *Sequencer) EditTask(t domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	idx := s.indexOfLocked(t.ID)
	if idx < 0 {
		s.mu.Unlock()
		return errors.Wrapf(errors.ErrTaskNotFound, "task %q", t.ID)
	}
	s.tasks[idx] = t
	retime := s.status == constants.RunStatusRunning && idx == s.active
	var src timer.Source
	if retime {
		src = s.source
		if s.lastTimeLeft > t.Duration {
			s.lastTimeLeft = t.Duration
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if retime {
		if err := src.Update(t.Duration, t.ReminderInterval, nil); err != nil {
			s.log.Warn().Err(err).Str("task_id", t.ID).Msg("retiming active countdown failed")
		}
	}

	s.log.Debug().Str("task_id", t.ID).Msg("task edited")
	s.publish(snap)
	return nil
}

// RemoveTask deletes the task with the given id. Removing before the
// active task shifts the active index down; removing the active task
// re-selects whatever now sits at the same position, wrapping to the
// front when the active task was last. An emptied list goes Idle.
func (s *Sequencer) RemoveTask(id string) error {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return errors.Wrapf(errors.ErrTaskNotFound, "task %q", id)
	}

	removingActive := idx == s.active
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)

	var restart *domain.Task
	var src timer.Source

	switch {
	case len(s.tasks) == 0:
		s.active = 0
		s.lastTimeLeft = 0
		s.completionLatched = false
		s.generation++
		if s.status != constants.RunStatusIdle {
			s.status = constants.RunStatusIdle
			src = s.source
		}
	case idx < s.active:
		s.active--
	case removingActive:
		if s.active >= len(s.tasks) {
			s.active = 0
		}
		if s.status == constants.RunStatusRunning {
			next := s.tasks[s.active]
			restart = &next
			s.lastTimeLeft = next.Duration
			s.completionLatched = false
			s.generation++
			src = s.source
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	switch {
	case restart != nil:
		if err := src.Start(restart.Duration, restart.Duration, restart.ReminderInterval); err != nil {
			s.log.Warn().Err(err).Msg("restarting clock source after removal failed")
		}
	case src != nil:
		if err := src.Pause(); err != nil {
			s.log.Warn().Err(err).Msg("pausing clock source after removal failed")
		}
	}

	s.log.Debug().Str("task_id", id).Msg("task removed")
	s.publish(snap)
	return nil
}

// StartTask activates the task at index i and starts its countdown from
// the full duration. Legal from any state, including mid-run jumps.
func (s *Sequencer) StartTask(i int) error {
	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		return errors.ErrNoTasks
	}
	if i < 0 || i >= len(s.tasks) {
		s.mu.Unlock()
		return errors.Wrapf(errors.ErrTaskIndexOutOfRange, "index %d of %d tasks", i, len(s.tasks))
	}
	if err := checkTransition(s.status, constants.RunStatusRunning); err != nil {
		s.mu.Unlock()
		return err
	}

	s.active = i
	s.status = constants.RunStatusRunning
	s.paused = false
	s.completionLatched = false
	s.generation++
	task := s.tasks[i]
	s.lastTimeLeft = task.Duration
	src := s.source
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := src.Start(task.Duration, task.Duration, task.ReminderInterval); err != nil {
		return err
	}

	s.log.Info().Str("task_id", task.ID).Str("name", task.Name).Int("duration", task.Duration).Msg("task started")
	s.publish(snap)
	return nil
}

// Pause halts the active countdown, keeping its position.
func (s *Sequencer) Pause() error {
	s.mu.Lock()
	if s.status != constants.RunStatusRunning || s.paused {
		s.mu.Unlock()
		return nil
	}
	s.paused = true
	src := s.source
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := src.Pause(); err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

// Resume continues a paused countdown from where it stopped.
func (s *Sequencer) Resume() error {
	s.mu.Lock()
	if s.status != constants.RunStatusRunning || !s.paused {
		s.mu.Unlock()
		return nil
	}
	s.paused = false
	task := s.tasks[s.active]
	timeLeft := s.lastTimeLeft
	src := s.source
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := src.Start(task.Duration, timeLeft, task.ReminderInterval); err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

// Reset returns the sequencer to Idle without touching the task list.
func (s *Sequencer) Reset() error {
	s.mu.Lock()
	if s.status == constants.RunStatusIdle {
		s.mu.Unlock()
		return nil
	}
	s.status = constants.RunStatusIdle
	s.paused = false
	s.completionLatched = false
	s.generation++
	s.lastTimeLeft = 0
	src := s.source
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := src.Pause(); err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

// OnTaskComplete reacts to the active task's countdown hitting zero. The
// completion ritual fires once per task activation no matter how many
// complete events the source delivers, and the sequencer advances only
// once the ritual signals done, so the next countdown never runs under
// the settle and linger delays.
func (s *Sequencer) OnTaskComplete() {
	s.mu.Lock()
	if s.status != constants.RunStatusRunning || s.completionLatched {
		s.mu.Unlock()
		return
	}
	s.completionLatched = true
	gen := s.generation
	finished := s.tasks[s.active]
	ctx := s.runCtx
	s.mu.Unlock()

	go func() {
		if err := s.ritual.RunCompletion(ctx, finished.Name, finished.Name+" complete", finished.CompletionSoundID); err != nil {
			s.log.Debug().Err(err).Str("task_id", finished.ID).Msg("completion ritual aborted")
		}
		s.completeActivation(ctx, gen, finished)
	}()
}

// completeActivation runs after the completion ritual's done signal:
// advance to the next task, or close out the run when the finished task
// was the last. A stale generation means the run was restarted or reset
// while the ritual played, and the completion is discarded.
func (s *Sequencer) completeActivation(ctx context.Context, gen uint64, finished domain.Task) {
	s.mu.Lock()
	if s.generation != gen || s.status != constants.RunStatusRunning {
		s.mu.Unlock()
		return
	}
	s.generation++
	s.completionLatched = false

	if s.active+1 >= len(s.tasks) {
		s.status = constants.RunStatusAllComplete
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.log.Info().Str("task_id", finished.ID).Msg("all tasks completed")
		s.publish(snap)

		go func() {
			if err := s.delay.Sleep(ctx, constants.AllCompleteAnnounceDelay); err != nil {
				return
			}
			s.speaker.Speak(ctx, allCompleteMessage)
		}()
		return
	}

	s.active++
	s.paused = false
	next := s.tasks[s.active]
	s.lastTimeLeft = next.Duration
	src := s.source
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := src.Start(next.Duration, next.Duration, next.ReminderInterval); err != nil {
		s.log.Warn().Err(err).Str("task_id", next.ID).Msg("starting next task failed")
	}
	// The name announcement is direct speech with no sound; it is not a
	// ritual.
	s.speaker.Speak(ctx, next.Name)

	s.log.Info().
		Str("finished_task_id", finished.ID).
		Str("next_task_id", next.ID).
		Msg("advanced to next task")
	s.publish(snap)
}

// Handoff swaps the driving clock source, carrying the countdown position
// over so no second is double counted or skipped. The previous source is
// paused and its buffered events consumed before the position is captured;
// a tick or completion already emitted must land exactly once, on the old
// source's account.
func (s *Sequencer) Handoff(next timer.Source) error {
	s.mu.Lock()
	prev := s.source
	s.source = next
	gen := s.generation
	ctx := s.runCtx
	s.mu.Unlock()

	if prev != nil && prev != next {
		if err := prev.Pause(); err != nil {
			s.log.Warn().Err(err).Msg("pausing previous clock source failed")
		}
		// A completion surfacing here latches and later advances on the
		// replacement source, which is already installed.
		s.drainEvents(ctx, prev)
	}

	// A generation change means a new activation already started on the
	// replacement source; restarting it here would rewind that countdown.
	s.mu.Lock()
	running := s.status == constants.RunStatusRunning && !s.paused &&
		!s.completionLatched && s.generation == gen
	var task domain.Task
	var timeLeft int
	if running {
		task = s.tasks[s.active]
		timeLeft = s.lastTimeLeft
	}
	s.mu.Unlock()

	if running {
		if err := next.Start(task.Duration, timeLeft, task.ReminderInterval); err != nil {
			return err
		}
	}

	// Nudge the event loop onto the new source's channel.
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// drainEvents consumes whatever the paused source already emitted. The Run
// loop may be pulling from the same channel concurrently; either consumer
// routes each event through handleEvent exactly once.
func (s *Sequencer) drainEvents(ctx context.Context, src timer.Source) {
	for {
		select {
		case ev, ok := <-src.Events():
			if !ok {
				return
			}
			s.handleEvent(ctx, ev)
		default:
			return
		}
	}
}

// Run consumes source events until ctx is canceled. Rituals spawned from
// events inherit ctx.
func (s *Sequencer) Run(ctx context.Context) error {
	s.mu.Lock()
	s.runCtx = ctx
	s.mu.Unlock()

	for {
		s.mu.Lock()
		src := s.source
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
			continue
		case ev, ok := <-src.Events():
			if !ok {
				return errors.ErrSourceClosed
			}
			s.handleEvent(ctx, ev)
		}
	}
}

// handleEvent dispatches one upstream event.
func (s *Sequencer) handleEvent(ctx context.Context, ev timer.Event) {
	switch ev.Type {
	case timer.EventTick:
		if ev.Data == nil || ev.Data.TimeLeft == nil {
			return
		}
		s.mu.Lock()
		s.lastTimeLeft = *ev.Data.TimeLeft
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.publish(snap)

	case timer.EventNotification:
		if ev.Data == nil {
			return
		}
		s.handleCue(ctx, ev.Data.Kind, ev.Data.Elapsed)

	case timer.EventComplete:
		s.OnTaskComplete()

	case timer.EventReset:
		if ev.Data == nil || ev.Data.TimeLeft == nil {
			return
		}
		s.mu.Lock()
		s.lastTimeLeft = *ev.Data.TimeLeft
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.publish(snap)
	}
}

// handleCue fires the reminder or final-minute ritual for the active task.
func (s *Sequencer) handleCue(ctx context.Context, kind string, elapsed int) {
	s.mu.Lock()
	if s.status != constants.RunStatusRunning || len(s.tasks) == 0 {
		s.mu.Unlock()
		return
	}
	task := s.tasks[s.active]
	s.mu.Unlock()

	switch kind {
	case timer.NotificationRecurrent:
		message := fmt.Sprintf("%s elapsed", formatSpan(elapsed))
		go func() {
			if err := s.ritual.RunReminder(ctx, task.Name, message, task.ReminderSoundID); err != nil {
				s.log.Debug().Err(err).Msg("reminder ritual aborted")
			}
		}()
	case timer.NotificationFinalMinute:
		go func() {
			if err := s.ritual.RunFinalMinute(ctx, task.Name, task.ReminderSoundID); err != nil {
				s.log.Debug().Err(err).Msg("final minute ritual aborted")
			}
		}()
	}
}

func (s *Sequencer) indexOfLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// formatSpan renders a second count the way Go durations print, e.g.
// "12m30s".
func formatSpan(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}
