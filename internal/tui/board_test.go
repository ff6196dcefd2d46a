package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/store"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

func clock() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local) }

func newModel(t *testing.T, tasks ...task.Task) (*Board, *store.Adapter) {
	t.Helper()
	a := store.NewAdapter(store.NewMemoryBlobs(), "")
	if tasks != nil {
		require.NoError(t, a.Save(tasks))
	}
	b, _, err := board.Open(a, board.WithClock(clock))
	require.NoError(t, err)
	_, err = b.Activate()
	require.NoError(t, err)
	require.NoError(t, b.Save())

	m := NewBoard(b, Options{Name: "test", DefaultLevel: "light", DefaultRepeat: "none"})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, a
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func send(m *Board, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func stored(t *testing.T, a *store.Adapter) []task.Task {
	t.Helper()
	tasks, _, err := a.Load()
	require.NoError(t, err)
	return tasks
}

func plain(text string) task.Task {
	return task.Task{Text: text, Level: task.LevelLight, Repeat: task.RepeatNone}
}

func TestAddFlow(t *testing.T) {
	m, a := newModel(t, task.Task{Text: "later", Level: task.LevelLight, Date: "2025-12-01", Repeat: task.RepeatNone})

	send(m, runes("a"), runes("Dive"), enter, runes("deep 2025-06-20 weekly"), enter)

	got := stored(t, a)
	require.Len(t, got, 2)
	assert.Equal(t, task.Task{Text: "Dive", Level: task.LevelDeep, Date: "2025-06-20", Repeat: task.RepeatWeekly}, got[0],
		"adding runs activation, which sorts the new task first")
	assert.Equal(t, modeList, m.mode)
	assert.NoError(t, m.err)
}

func TestAddFlow_ReloadKeepsSortedList(t *testing.T) {
	m, a := newModel(t, task.Task{Text: "later", Level: task.LevelLight, Date: "2025-12-01", Repeat: task.RepeatNone})

	send(m, runes("a"), runes("Dive"), enter, runes("2025-06-20"), enter)
	require.Equal(t, []string{"Dive", "later"}, textsOf(stored(t, a)))

	send(m, ReloadMsg{})
	assert.Equal(t, "Dive", m.views[0].Text)
	assert.Equal(t, "later", m.views[1].Text)
}

func TestAddFlow_EmptyTextIsIgnored(t *testing.T) {
	m, a := newModel(t)

	send(m, runes("a"), enter)

	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, stored(t, a))
}

func TestAddFlow_InvalidDateShowsError(t *testing.T) {
	m, a := newModel(t)

	send(m, runes("a"), runes("x"), enter, runes("31/12/2025"), enter)

	assert.Error(t, m.err)
	assert.Empty(t, stored(t, a))
}

func TestToggleAndDelete(t *testing.T) {
	m, a := newModel(t, plain("one"), plain("two"))

	send(m, runes("j"), space)
	assert.True(t, stored(t, a)[1].Completed)

	send(m, runes("d"))
	assert.Equal(t, modeConfirmDelete, m.mode)
	send(m, runes("n"))
	assert.Len(t, stored(t, a), 2)

	send(m, runes("d"), runes("y"))
	got := stored(t, a)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Text)
	assert.Equal(t, 0, m.cursor, "cursor is clamped after delete")
}

func TestEditFlow(t *testing.T) {
	m, a := newModel(t, plain("old"))

	send(m, runes("e"))
	assert.Equal(t, "old", m.input.Value())

	m.input.SetValue("new")
	send(m, enter)
	assert.Equal(t, "new", stored(t, a)[0].Text)

	send(m, runes("e"))
	m.input.SetValue("   ")
	send(m, enter)
	assert.Equal(t, "new", stored(t, a)[0].Text, "blank edits keep the text")
}

func TestReorder(t *testing.T) {
	m, a := newModel(t, plain("a"), plain("b"), plain("c"))

	send(m, runes("J"))
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, []string{"b", "a", "c"}, textsOf(stored(t, a)))

	send(m, ReloadMsg{})
	assert.Equal(t, "a", m.views[1].Text, "reload keeps the saved order")

	send(m, runes("K"))
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, []string{"a", "b", "c"}, textsOf(stored(t, a)))
}

func TestSearch(t *testing.T) {
	m, _ := newModel(t, plain("Pay rent"), plain("Stretch"), plain("pay taxes"))

	send(m, runes("/"), runes("pay"))
	assert.Len(t, m.views, 2)
	send(m, enter)
	assert.Equal(t, "pay", m.query)
	assert.Len(t, m.views, 2)

	send(m, runes("J"))
	assert.NotEmpty(t, m.notice, "reordering is disabled while filtered")

	send(m, esc)
	assert.Empty(t, m.query)
	assert.Len(t, m.views, 3)
}

func TestActivateMsgAdvancesRecurring(t *testing.T) {
	m, a := newModel(t, task.Task{Text: "x", Level: task.LevelLight, Date: "2020-01-01", Repeat: task.RepeatDaily})
	assert.Equal(t, "2020-01-02", stored(t, a)[0].Date)

	send(m, ActivateMsg{})
	assert.Equal(t, "2020-01-03", stored(t, a)[0].Date)
	assert.True(t, m.views[0].Expired)
}

func TestHelpAndView(t *testing.T) {
	m, _ := newModel(t, task.Task{Text: "due now", Level: task.LevelMiddle, Date: "2025-06-15", Repeat: task.RepeatNone})

	out := m.View()
	assert.Contains(t, out, "due now")
	assert.Contains(t, out, "2025-06-15")

	send(m, runes("?"))
	assert.Equal(t, modeHelp, m.mode)
	assert.NotEmpty(t, m.View())
	send(m, runes("x"))
	assert.Equal(t, modeList, m.mode)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestParseDetails(t *testing.T) {
	level, due, repeat, err := parseDetails("weekly 2025-07-01 Deep", "light", "none")
	require.NoError(t, err)
	assert.Equal(t, "deep", level)
	assert.Equal(t, "2025-07-01", due)
	assert.Equal(t, "weekly", repeat)

	level, due, repeat, err = parseDetails("", "middle", "daily")
	require.NoError(t, err)
	assert.Equal(t, "middle", level)
	assert.Empty(t, due)
	assert.Equal(t, "daily", repeat)

	_, _, _, err = parseDetails("2025-07-01 2025-07-02", "light", "none")
	assert.Error(t, err)
}

func textsOf(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}
