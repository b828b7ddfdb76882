package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/sequencer"
)

// Controller is the slice of the sequencer the run screen drives.
type Controller interface {
	StartTask(i int) error
	Pause() error
	Resume() error
	Reset() error
	Snapshot() sequencer.Snapshot
}

// FocusSink receives terminal focus changes. The visibility monitor
// implements it.
type FocusSink interface {
	Set(visible bool)
}

// SnapshotMsg delivers a sequencer snapshot into the Bubble Tea loop.
// The run command forwards sequencer changes with Program.Send.
type SnapshotMsg sequencer.Snapshot

// Model is the run screen. It renders the task list and the active
// countdown, and forwards key presses to the sequencer.
type Model struct {
	ctrl  Controller
	focus FocusSink

	snap     sequencer.Snapshot
	cursor   int
	progress progress.Model
	width    int
	lastErr  error
	quitting bool
}

// NewModel creates the run screen over a sequencer.
func NewModel(ctrl Controller, focus FocusSink) Model {
	return Model{
		ctrl:     ctrl,
		focus:    focus,
		snap:     ctrl.Snapshot(),
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = sequencer.Snapshot(msg)
		if m.snap.Status == constants.RunStatusRunning {
			m.cursor = m.snap.Active
		}
		if m.cursor >= len(m.snap.Tasks) {
			m.cursor = max(0, len(m.snap.Tasks)-1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case tea.FocusMsg:
		m.focus.Set(true)
		return m, nil

	case tea.BlurMsg:
		m.focus.Set(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.snap.Tasks)-1 {
			m.cursor++
		}

	case "enter", "s":
		m.lastErr = m.ctrl.StartTask(m.cursor)

	case " ":
		if m.snap.Paused {
			m.lastErr = m.ctrl.Resume()
		} else {
			m.lastErr = m.ctrl.Pause()
		}

	case "r":
		m.lastErr = m.ctrl.Reset()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(constants.AppName))
	b.WriteString("\n\n")

	b.WriteString(m.renderCountdown())
	b.WriteString("\n\n")

	for i, t := range m.snap.Tasks {
		b.WriteString(m.renderTaskLine(i, t.Name, t.Duration))
		b.WriteString("\n")
	}
	if len(m.snap.Tasks) == 0 {
		b.WriteString(StylePendingTask.Render("no tasks loaded, add some with: pacebell add"))
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(StylePaused.Render(m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleHelp.Render("enter start · space pause · r reset · j/k move · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCountdown() string {
	switch m.snap.Status {
	case constants.RunStatusIdle:
		return StylePendingTask.Render("idle")

	case constants.RunStatusAllComplete:
		return StyleDoneTask.Render("all tasks completed")

	case constants.RunStatusRunning:
		clock := FormatClock(m.snap.TimeLeft)
		style := StyleCountdown
		if m.snap.TimeLeft <= constants.FinalMinuteMark && m.snap.TimeLeft > 0 {
			style = StyleCountdownFinal
		}

		line := style.Render(clock)
		if m.snap.Paused {
			line += "  " + StylePaused.Render("paused")
		}

		if task, ok := m.snap.ActiveTask(); ok && task.Duration > 0 {
			percent := 1 - float64(m.snap.TimeLeft)/float64(task.Duration)
			line += "\n" + m.progress.ViewAs(percent)
		}
		return line
	}

	return ""
}

func (m Model) renderTaskLine(i int, name string, duration int) string {
	marker := "  "
	if i == m.cursor {
		marker = "> "
	}

	label := fmt.Sprintf("%s%s (%s)", marker, name, FormatClock(duration))
	running := m.snap.Status == constants.RunStatusRunning
	switch {
	case running && i == m.snap.Active:
		return StyleActiveTask.Render(label)
	case m.snap.Status == constants.RunStatusAllComplete || (running && i < m.snap.Active):
		return StyleDoneTask.Render(label)
	default:
		return StylePendingTask.Render(label)
	}
}

// FormatClock renders a second count as m:ss, or h:mm:ss past an hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
