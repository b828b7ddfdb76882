package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pacebell/pacebell/internal/config"
	"github.com/pacebell/pacebell/internal/domain"
	pacebellerrors "github.com/pacebell/pacebell/internal/errors"
	"github.com/pacebell/pacebell/internal/tui"
)

// newTasksCmd creates the tasks command group.
func newTasksCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the task list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasksList(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.AddCommand(newTasksListCmd(flags))
	cmd.AddCommand(newTasksRemoveCmd(flags))

	return cmd
}

// newTasksListCmd creates the tasks list command.
func newTasksListCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasksList(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
}

// newTasksRemoveCmd creates the tasks remove command.
func newTasksRemoveCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a task by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasksRemove(cmd.Context(), cmd.OutOrStdout(), flags, args[0])
		},
	}
}

// runTasksList prints the configured task list.
func runTasksList(ctx context.Context, w io.Writer, flags *GlobalFlags) error {
	out := tui.NewOutput(w, flags.Output)

	tasks, _, err := loadTaskFile(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	if flags.Output == OutputJSON {
		if tasks == nil {
			tasks = []domain.Task{}
		}
		return out.JSON(tasks)
	}

	if len(tasks) == 0 {
		out.Info("No tasks configured. Add one with: pacebell add")
		return nil
	}

	for i, t := range tasks {
		line := fmt.Sprintf("%d. %s  %s", i+1, t.Name, tui.FormatClock(t.Duration))
		if t.ReminderInterval > 0 {
			line += fmt.Sprintf("  (reminder every %s)", tui.FormatClock(t.ReminderInterval))
		}
		out.Info(line)
		out.Info(fmt.Sprintf("   id: %s", t.ID))
	}
	return nil
}

// runTasksRemove deletes one task from the task file.
func runTasksRemove(ctx context.Context, w io.Writer, flags *GlobalFlags, id string) error {
	out := tui.NewOutput(w, flags.Output)

	tasks, path, err := loadTaskFile(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	kept := make([]domain.Task, 0, len(tasks))
	var removed *domain.Task
	for _, t := range tasks {
		if t.ID == id && removed == nil {
			r := t
			removed = &r
			continue
		}
		kept = append(kept, t)
	}
	if removed == nil {
		err := fmt.Errorf("%w: %s", pacebellerrors.ErrTaskNotFound, id)
		out.Error(err)
		return err
	}

	if err := config.SaveTasks(path, kept); err != nil {
		out.Error(err)
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(removed)
	}
	out.Success(fmt.Sprintf("Removed task: %s", removed.Name))
	return nil
}

// loadTaskFile resolves the task file path and loads it.
func loadTaskFile(ctx context.Context) ([]domain.Task, string, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	path, err := config.TasksFilePath(cfg)
	if err != nil {
		return nil, "", err
	}
	tasks, err := config.LoadTasks(path)
	if err != nil {
		return nil, "", err
	}
	return tasks, path, nil
}
