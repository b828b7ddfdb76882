package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
	"github.com/pacebell/pacebell/internal/sequencer"
)

type fakeController struct {
	snap    sequencer.Snapshot
	started []int
	paused  int
	resumed int
	reset   int
}

func (f *fakeController) StartTask(i int) error {
	f.started = append(f.started, i)
	return nil
}

func (f *fakeController) Pause() error  { f.paused++; return nil }
func (f *fakeController) Resume() error { f.resumed++; return nil }
func (f *fakeController) Reset() error  { f.reset++; return nil }

func (f *fakeController) Snapshot() sequencer.Snapshot { return f.snap }

type fakeFocus struct {
	visible []bool
}

func (f *fakeFocus) Set(visible bool) { f.visible = append(f.visible, visible) }

func testSnapshot() sequencer.Snapshot {
	return sequencer.Snapshot{
		Status: constants.RunStatusIdle,
		Tasks: []domain.Task{
			{ID: "a", Name: "Deep Work", Duration: 1500},
			{ID: "b", Name: "Email", Duration: 600},
			{ID: "c", Name: "Wrap up", Duration: 300},
		},
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update must return the run model")
	return got
}

func TestModel_CursorMovesWithinBounds(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})

	m = update(t, m, key("k"))
	assert.Equal(t, 0, m.cursor, "cursor must not move above the first task")

	m = update(t, m, key("j"))
	m = update(t, m, key("j"))
	m = update(t, m, key("j"))
	assert.Equal(t, 2, m.cursor, "cursor must stop at the last task")

	m = update(t, m, key("k"))
	assert.Equal(t, 1, m.cursor)
}

func TestModel_EnterStartsSelectedTask(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})

	m = update(t, m, key("j"))
	_ = update(t, m, key("enter"))

	require.Len(t, ctrl.started, 1)
	assert.Equal(t, 1, ctrl.started[0])
}

func TestModel_SpaceTogglesPauseByState(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})

	m = update(t, m, key(" "))
	assert.Equal(t, 1, ctrl.paused)
	assert.Equal(t, 0, ctrl.resumed)

	snap := testSnapshot()
	snap.Status = constants.RunStatusRunning
	snap.Paused = true
	snap.TimeLeft = 120
	m = update(t, m, SnapshotMsg(snap))

	_ = update(t, m, key(" "))
	assert.Equal(t, 1, ctrl.resumed)
}

func TestModel_ResetKey(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})

	_ = update(t, m, key("r"))
	assert.Equal(t, 1, ctrl.reset)
}

func TestModel_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			ctrl := &fakeController{snap: testSnapshot()}
			m := NewModel(ctrl, &fakeFocus{})

			msg := key(k)
			if k == "ctrl+c" {
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}

			next, cmd := m.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.Empty(t, next.(Model).View(), "quitting model renders nothing")
		})
	}
}

func TestModel_SnapshotTracksActiveTask(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})

	snap := testSnapshot()
	snap.Status = constants.RunStatusRunning
	snap.Active = 2
	snap.TimeLeft = 45
	m = update(t, m, SnapshotMsg(snap))

	assert.Equal(t, 2, m.cursor, "cursor follows the running task")
	assert.Contains(t, m.View(), "0:45")
}

func TestModel_SnapshotClampsCursorOnShrink(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})
	m = update(t, m, key("j"))
	m = update(t, m, key("j"))

	snap := testSnapshot()
	snap.Tasks = snap.Tasks[:1]
	m = update(t, m, SnapshotMsg(snap))

	assert.Equal(t, 0, m.cursor)
}

func TestModel_FocusMessagesDriveVisibility(t *testing.T) {
	focus := &fakeFocus{}
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, focus)

	m = update(t, m, tea.BlurMsg{})
	_ = update(t, m, tea.FocusMsg{})

	assert.Equal(t, []bool{false, true}, focus.visible)
}

func TestModel_ViewStates(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})

	view := m.View()
	assert.Contains(t, view, constants.AppName)
	assert.Contains(t, view, "idle")
	assert.Contains(t, view, "Deep Work")
	assert.Contains(t, view, "25:00")

	snap := testSnapshot()
	snap.Status = constants.RunStatusAllComplete
	m = update(t, m, SnapshotMsg(snap))
	assert.Contains(t, m.View(), "all tasks completed")
}

func TestModel_ViewMarksPaused(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := NewModel(ctrl, &fakeFocus{})

	snap := testSnapshot()
	snap.Status = constants.RunStatusRunning
	snap.TimeLeft = 90
	snap.Paused = true
	m = update(t, m, SnapshotMsg(snap))

	assert.Contains(t, m.View(), "paused")
}

func TestModel_ViewWithoutTasks(t *testing.T) {
	ctrl := &fakeController{snap: sequencer.Snapshot{Status: constants.RunStatusIdle}}
	m := NewModel(ctrl, &fakeFocus{})

	assert.Contains(t, m.View(), "pacebell add")
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{-3, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{1500, "25:00"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}
