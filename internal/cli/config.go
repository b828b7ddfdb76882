package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pacebell/pacebell/internal/config"
	"github.com/pacebell/pacebell/internal/tui"
)

// newConfigCmd creates the config command group.
func newConfigCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect pacebell configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration after merging defaults, the
configuration file, and PACEBELL_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigPath(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	})

	return cmd
}

// runConfigShow prints the effective configuration.
func runConfigShow(ctx context.Context, w io.Writer, flags *GlobalFlags) error {
	out := tui.NewOutput(w, flags.Output)

	cfg, err := config.Load(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// runConfigPath prints where pacebell reads its files from.
func runConfigPath(ctx context.Context, w io.Writer, flags *GlobalFlags) error {
	out := tui.NewOutput(w, flags.Output)

	cfg, err := config.Load(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	configPath, err := config.FilePath()
	if err != nil {
		return err
	}
	tasksPath, err := config.TasksFilePath(cfg)
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(map[string]string{
			"config": configPath,
			"tasks":  tasksPath,
		})
	}

	out.Info("config: " + configPath)
	out.Info("tasks:  " + tasksPath)
	return nil
}
