package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pacebell/pacebell/internal/config"
	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
	pacebellerrors "github.com/pacebell/pacebell/internal/errors"
	"github.com/pacebell/pacebell/internal/sound"
	"github.com/pacebell/pacebell/internal/tui"
)

// addFlags holds the flags for the add command.
type addFlags struct {
	duration        time.Duration
	reminder        time.Duration
	reminderSound   string
	completionSound string
	json            bool
}

// newAddCmd creates the add command.
func newAddCmd(flags *GlobalFlags) *cobra.Command {
	af := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task to the task list",
		Long: `Add a task to the task list.

When called without a name argument, launches an interactive form.
When called with a name argument and flags, adds the task directly
(for scripts).

Examples:
  # Interactive mode
  pacebell add

  # Flag mode
  pacebell add "Deep work" --duration 25m --reminder 5m

  # With explicit cue sounds (see: pacebell sounds)
  pacebell add "Review" --duration 15m --reminder-sound ping

Exit codes:
  0: Success
  1: General error (IO, validation)
  2: Invalid input (missing required flags)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), cmd.OutOrStdout(), args, flags, af)
		},
	}

	cmd.Flags().DurationVarP(&af.duration, "duration", "d", 0, "Task duration (e.g. 25m, 1h30m)")
	cmd.Flags().DurationVarP(&af.reminder, "reminder", "r", 0, "Reminder interval, 0 disables reminders")
	cmd.Flags().StringVar(&af.reminderSound, "reminder-sound", "", "Catalog sound id for the reminder cue")
	cmd.Flags().StringVar(&af.completionSound, "completion-sound", "", "Catalog sound id for the completion cue")
	cmd.Flags().BoolVar(&af.json, "json", false, "Output created task as JSON")

	return cmd
}

// runAdd executes the add command.
func runAdd(ctx context.Context, w io.Writer, args []string, flags *GlobalFlags, af *addFlags) error {
	outputFormat := flags.Output
	if af.json {
		outputFormat = OutputJSON
	}
	out := tui.NewOutput(w, outputFormat)

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

	task, err := resolveAddMode(args, af, catalog)
	if err != nil {
		if pacebellerrors.IsExitCode2Error(err) {
			return err
		}
		out.Error(err)
		return err
	}

	tasks = append(tasks, task)
	if err := config.SaveTasks(tasksPath, tasks); err != nil {
		out.Error(err)
		return err
	}

	if outputFormat == OutputJSON {
		return out.JSON(task)
	}

	out.Success(fmt.Sprintf("Added task: %s", task.Name))
	out.Info(fmt.Sprintf("  Duration: %s", tui.FormatClock(task.Duration)))
	if task.ReminderInterval > 0 {
		out.Info(fmt.Sprintf("  Reminder: every %s", tui.FormatClock(task.ReminderInterval)))
	}
	return nil
}

// resolveAddMode determines whether to use interactive or flag mode and
// returns the task to append.
func resolveAddMode(args []string, af *addFlags, catalog *sound.Catalog) (domain.Task, error) {
	if len(args) == 0 && af.duration == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return domain.Task{}, pacebellerrors.NewExitCode2Error(
				fmt.Errorf("%w: pass a name and --duration when not on a terminal", pacebellerrors.ErrInteractiveRequired))
		}
		return runAddInteractive(af, catalog)
	}

	if len(args) == 0 {
		return domain.Task{}, pacebellerrors.NewExitCode2Error(
			fmt.Errorf("%w: name argument is required in flag mode", pacebellerrors.ErrTaskNameEmpty))
	}
	if af.duration <= 0 {
		return domain.Task{}, pacebellerrors.NewExitCode2Error(
			fmt.Errorf("%w: --duration flag is required", pacebellerrors.ErrTaskDurationInvalid))
	}

	return buildTask(args[0], af, catalog)
}

// buildTask creates a Task from command flags.
func buildTask(name string, af *addFlags, catalog *sound.Catalog) (domain.Task, error) {
	if af.reminderSound != "" {
		if _, ok := catalog.Lookup(constants.SoundPurposeReminder, af.reminderSound); !ok {
			return domain.Task{}, pacebellerrors.NewExitCode2Error(
				fmt.Errorf("%w: reminder sound %q", pacebellerrors.ErrSoundNotFound, af.reminderSound))
		}
	}
	if af.completionSound != "" {
		if _, ok := catalog.Lookup(constants.SoundPurposeCompletion, af.completionSound); !ok {
			return domain.Task{}, pacebellerrors.NewExitCode2Error(
				fmt.Errorf("%w: completion sound %q", pacebellerrors.ErrSoundNotFound, af.completionSound))
		}
	}

	task, err := domain.NewTask(name, int(af.duration.Seconds()), int(af.reminder.Seconds()))
	if err != nil {
		return domain.Task{}, pacebellerrors.NewExitCode2Error(err)
	}
	task.ReminderSoundID = af.reminderSound
	task.CompletionSoundID = af.completionSound
	return task, nil
}

// runAddInteractive runs the interactive form for adding a task.
func runAddInteractive(af *addFlags, catalog *sound.Catalog) (domain.Task, error) {
	var (
		name        string
		durationStr string
		reminderStr string
	)
	reminderSound := af.reminderSound
	completionSound := af.completionSound

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("What are you working on? (required)").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return pacebellerrors.ErrTaskNameEmpty
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration").
				Description("How long the task runs (e.g. 25m, 1h30m)").
				Value(&durationStr).
				Validate(validatePositiveDuration),
			huh.NewInput().
				Title("Reminder interval (optional)").
				Description("How often to hear a pacing cue (e.g. 5m, empty to disable)").
				Value(&reminderStr).
				Validate(validateOptionalDuration),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Reminder sound").
				Options(soundOptions(catalog, constants.SoundPurposeReminder)...).
				Value(&reminderSound),
			huh.NewSelect[string]().
				Title("Completion sound").
				Options(soundOptions(catalog, constants.SoundPurposeCompletion)...).
				Value(&completionSound),
		),
	).WithTheme(tui.FormTheme())

	if err := form.Run(); err != nil {
		return domain.Task{}, fmt.Errorf("%w: %v", pacebellerrors.ErrOperationCanceled, err)
	}

	duration, _ := time.ParseDuration(durationStr) // validation already passed in form
	var reminder time.Duration
	if reminderStr != "" {
		reminder, _ = time.ParseDuration(reminderStr)
	}

	built := &addFlags{
		duration:        duration,
		reminder:        reminder,
		reminderSound:   reminderSound,
		completionSound: completionSound,
	}
	return buildTask(name, built, catalog)
}

// soundOptions builds huh select options from the catalog, defaulting to
// the first entry.
func soundOptions(catalog *sound.Catalog, purpose constants.SoundPurpose) []huh.Option[string] {
	list := catalog.List(purpose)
	options := make([]huh.Option[string], 0, len(list))
	for _, s := range list {
		options = append(options, huh.NewOption(s.Name, s.ID))
	}
	return options
}

func validatePositiveDuration(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: expected a duration like 25m", pacebellerrors.ErrTaskDurationInvalid)
	}
	if d <= 0 {
		return fmt.Errorf("%w: duration must be positive", pacebellerrors.ErrValueOutOfRange)
	}
	return nil
}

func validateOptionalDuration(s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fmt.Errorf("%w: expected a duration like 5m", pacebellerrors.ErrReminderIntervalInvalid)
	}
	return nil
}
