// Package tui provides the terminal user interface for pacebell.
//
// This package provides the run screen (a Bubble Tea model showing the
// active countdown and the task list) and a centralized style system using
// Lip Gloss. All colors use AdaptiveColor for light/dark terminal support.
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR
// environment variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for the active task and the countdown.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for completed tasks.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for the final minute and paused state.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failures.
	ColorError = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for pending tasks and the help footer.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleTitle renders the header line.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// StyleCountdown renders the big remaining-time readout.
	StyleCountdown = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// StyleCountdownFinal renders the readout inside the final minute.
	StyleCountdownFinal = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)

	// StyleActiveTask marks the task the countdown belongs to.
	StyleActiveTask = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// StyleDoneTask marks tasks already completed this run.
	StyleDoneTask = lipgloss.NewStyle().Foreground(ColorSuccess)

	// StylePendingTask marks tasks not yet reached.
	StylePendingTask = lipgloss.NewStyle().Foreground(ColorMuted)

	// StylePaused renders the paused badge.
	StylePaused = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)

	// StyleHelp renders the key help footer.
	StyleHelp = lipgloss.NewStyle().Foreground(ColorMuted)

	// StyleError renders failure messages.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)

// CheckNoColor disables color output when NO_COLOR is set or the terminal
// is dumb. NO_COLOR disables color with any value, including empty, per
// https://no-color.org/.
func CheckNoColor() {
	_, noColor := os.LookupEnv("NO_COLOR")
	if noColor || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
