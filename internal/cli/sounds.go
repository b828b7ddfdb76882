package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
	"github.com/pacebell/pacebell/internal/sound"
	"github.com/pacebell/pacebell/internal/tui"
)

// newSoundsCmd creates the sounds command.
func newSoundsCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sounds",
		Short: "List available cue sounds",
		Long: `List the cue sounds available on this platform.

Use the ids with "pacebell add --reminder-sound" and
"pacebell add --completion-sound", or in the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSounds(cmd.OutOrStdout(), flags)
		},
	}
}

// runSounds prints the sound catalog grouped by purpose.
func runSounds(w io.Writer, flags *GlobalFlags) error {
	catalog := sound.DefaultCatalog()

	if flags.Output == OutputJSON {
		out := tui.NewOutput(w, flags.Output)
		return out.JSON(map[string][]domain.Sound{
			"reminder":   catalog.List(constants.SoundPurposeReminder),
			"completion": catalog.List(constants.SoundPurposeCompletion),
		})
	}

	out := tui.NewOutput(w, flags.Output)
	out.Info("Reminder sounds:")
	printSoundList(out, catalog.List(constants.SoundPurposeReminder))
	out.Info("")
	out.Info("Completion sounds:")
	printSoundList(out, catalog.List(constants.SoundPurposeCompletion))
	return nil
}

func printSoundList(out tui.Output, sounds []domain.Sound) {
	for i, s := range sounds {
		marker := " "
		if i == 0 {
			// First entry doubles as the fallback for unknown ids.
			marker = "*"
		}
		out.Info(fmt.Sprintf("  %s %-12s %s", marker, s.ID, s.Name))
	}
}
