// Package tui implements a terminal UI for the deepsea task list.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// mode represents the current screen state.
type mode int

const (
	modeList mode = iota
	modeAddText
	modeAddDetails
	modeEdit
	modeSearch
	modeConfirmDelete
	modeHelp
)

// Layout constants.
const (
	keyEsc   = "esc"
	keyEnter = "enter"

	headerChrome = 2 // title line + blank line
	footerChrome = 2 // input or blank line + status bar
	errorChrome  = 1 // extra line when an error toast is displayed
	textMaxWidth = 60
)

// Options configures the TUI.
type Options struct {
	Name          string
	DefaultLevel  string
	DefaultRepeat string
	Warnings      []string // shown once in the status area
}

// Board is the top-level bubbletea model. It renders the board's snapshot
// and forwards every user action to a board command handler.
type Board struct {
	board *board.Board
	opts  Options
	keys  keyMap

	views  []task.View // rows currently shown (filtered when searching)
	cursor int
	offset int // first visible row index
	mode   mode
	input  textinput.Model
	query  string
	draft  string // text captured in the first add step

	width  int
	height int
	err    error
	notice string
	help   string
}

// NewBoard creates the model over b. The caller activates b before the
// first render.
func NewBoard(b *board.Board, opts Options) *Board {
	in := textinput.New()
	in.CharLimit = 200
	m := &Board{
		board: b,
		opts:  opts,
		keys:  defaultKeys(),
		input: in,
	}
	if len(opts.Warnings) > 0 {
		m.notice = strings.Join(opts.Warnings, "; ")
	}
	m.sync()
	return m
}

// ReloadMsg is sent by the file watcher when the store changed on disk.
type ReloadMsg struct{}

// ActivateMsg is sent by the rollover scheduler to re-run activation.
type ActivateMsg struct{}

// ErrMsg reports a background failure, such as a watcher error.
type ErrMsg struct{ Err error }

// Init implements tea.Model.
func (m *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = ""
		m.ensureVisible()
		return m, nil
	case ReloadMsg:
		_, err := m.board.Reload()
		m.err = err
		m.sync()
		return m, nil
	case ActivateMsg:
		m.activate()
		return m, nil
	case ErrMsg:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Board) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeConfirmDelete:
		return m.viewDeleteConfirm()
	default:
		return m.viewList()
	}
}

func (m *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeAddText, modeAddDetails, modeEdit, modeSearch:
		return m.handleInputKey(msg)
	case modeConfirmDelete:
		return m.handleDeleteKey(msg)
	case modeHelp:
		m.mode = modeList
	}
	return m, nil
}

func (m *Board) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.query != "" && msg.String() == keyEsc {
			m.query = ""
			m.sync()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.views)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Toggle):
		if v, ok := m.selected(); ok {
			_, m.err = m.board.Toggle(v.Position)
			m.sync()
		}
	case key.Matches(msg, m.keys.Add):
		m.startInput(modeAddText, "", "What needs doing?")
	case key.Matches(msg, m.keys.Edit):
		if v, ok := m.selected(); ok {
			m.startInput(modeEdit, v.Text, "")
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.MoveDown):
		m.move(1)
	case key.Matches(msg, m.keys.MoveUp):
		m.move(-1)
	case key.Matches(msg, m.keys.Search):
		m.startInput(modeSearch, m.query, "search")
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}
	return m, nil
}

func (m *Board) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		if m.mode == modeSearch {
			m.query = ""
			m.sync()
		}
		m.stopInput()
		return m, nil
	case keyEnter:
		m.commitInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.query = m.input.Value()
		m.sync()
	}
	return m, cmd
}

func (m *Board) commitInput() {
	value := m.input.Value()
	switch m.mode {
	case modeAddText:
		if strings.TrimSpace(value) == "" {
			m.stopInput()
			return
		}
		m.draft = value
		m.startInput(modeAddDetails, "", "level due repeat (blank for defaults)")
		return
	case modeAddDetails:
		m.stopInput()
		level, due, repeat, err := parseDetails(value, m.opts.DefaultLevel, m.opts.DefaultRepeat)
		if err != nil {
			m.err = err
			return
		}
		added, err := m.board.Add(m.draft, level, due, repeat)
		m.draft = ""
		if err != nil {
			m.err = err
			return
		}
		if added {
			m.activate()
		}
		return
	case modeEdit:
		m.stopInput()
		if v, ok := m.selected(); ok {
			m.err = m.board.EditText(v.Position, value)
			m.sync()
		}
		return
	case modeSearch:
		m.stopInput()
	}
}

func (m *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if v, ok := m.selected(); ok {
			_, m.err = m.board.Delete(v.Position)
			m.sync()
		}
		m.mode = modeList
	case "n", "N", keyEsc, "q":
		m.mode = modeList
	}
	return m, nil
}

func (m *Board) move(delta int) {
	if m.query != "" {
		m.notice = "clear the search to reorder"
		return
	}
	target := m.cursor + delta
	if _, ok := m.selected(); !ok || target < 0 || target >= len(m.views) {
		return
	}
	if m.err = m.board.Reorder(m.cursor, target); m.err == nil {
		m.cursor = target
	}
	m.sync()
}

// activate re-runs activation and saves the sorted order, so a reload
// triggered by that save shows the same list.
func (m *Board) activate() {
	if _, m.err = m.board.Activate(); m.err == nil {
		m.err = m.board.Save()
	}
	m.sync()
}

func (m *Board) startInput(md mode, value, placeholder string) {
	m.mode = md
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m *Board) stopInput() {
	m.mode = modeList
	m.input.Blur()
	m.input.Reset()
}

// sync re-reads the board snapshot and applies the search filter.
func (m *Board) sync() {
	all := m.board.Snapshot()
	if m.query == "" {
		m.views = all
	} else {
		m.views = board.Filter(all, board.FilterOptions{Search: m.query})
	}
	m.clampCursor()
}

func (m *Board) selected() (task.View, bool) {
	if m.cursor < 0 || m.cursor >= len(m.views) {
		return task.View{}, false
	}
	return m.views[m.cursor], true
}

func (m *Board) clampCursor() {
	if m.cursor >= len(m.views) {
		m.cursor = len(m.views) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *Board) rowsAvailable() int {
	rows := m.height - headerChrome - footerChrome
	if m.err != nil || m.notice != "" {
		rows -= errorChrome
	}
	return max(rows, 1)
}

func (m *Board) ensureVisible() {
	rows := m.rowsAvailable()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// parseDetails reads "level due repeat" tokens in any order. Missing level
// and repeat take the given defaults.
func parseDetails(line, defLevel, defRepeat string) (level, due, repeat string, err error) {
	level, repeat = defLevel, defRepeat
	for _, tok := range strings.Fields(line) {
		switch {
		case task.Level(strings.ToLower(tok)).Valid():
			level = strings.ToLower(tok)
		case task.Repeat(strings.ToLower(tok)).Valid():
			repeat = strings.ToLower(tok)
		case due == "":
			due = tok
		default:
			return "", "", "", fmt.Errorf("unexpected %q: give at most one due date", tok)
		}
	}
	return level, due, repeat, nil
}

// --- Rendering ---

func (m *Board) viewList() string {
	var b strings.Builder

	title := "deepsea"
	if m.opts.Name != "" && m.opts.Name != title {
		title += " · " + m.opts.Name
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(dimStyle.Render("  today " + m.board.Today().String()))
	b.WriteString("\n\n")

	if len(m.views) == 0 {
		if m.query != "" {
			b.WriteString(dimStyle.Render("  no tasks match " + fmt.Sprintf("%q", m.query)))
		} else {
			b.WriteString(dimStyle.Render("  nothing to do. press a to add a task"))
		}
		b.WriteString("\n")
	}

	end := min(m.offset+m.rowsAvailable(), len(m.views))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.views[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Board) renderRow(v task.View, active bool) string {
	marker := "  "
	if active {
		marker = cursorStyle.Render("› ")
	}
	check := "[ ]"
	if v.Completed {
		check = "[x]"
	}

	text := truncate(v.Text, min(textMaxWidth, max(m.width-40, 10))) //nolint:mnd // room for the other columns
	switch {
	case v.Completed:
		text = completedStyle.Render(text)
	case v.Expired:
		text = expiredStyle.Render(text)
	case v.Today:
		text = todayStyle.Render(text)
	}

	var meta []string
	meta = append(meta, levelStyle(string(v.Level)).Render(string(v.Level)))
	if v.Date != "" {
		due := v.Date
		switch {
		case v.Expired:
			due = expiredStyle.Render(due + " expired")
		case v.Today:
			due = todayStyle.Render("today")
		}
		meta = append(meta, due)
	}
	if v.Repeat != task.RepeatNone {
		meta = append(meta, dimStyle.Render("↻ "+string(v.Repeat)))
	}

	return marker + check + " " + text + "  " + strings.Join(meta, dimStyle.Render(" · "))
}

func (m *Board) renderFooter() string {
	var b strings.Builder

	switch m.mode {
	case modeAddText:
		b.WriteString("add: " + m.input.View())
	case modeAddDetails:
		b.WriteString("details for " + fmt.Sprintf("%q", truncate(m.draft, 30)) + ": " + m.input.View()) //nolint:mnd // prompt width
	case modeEdit:
		b.WriteString("edit: " + m.input.View())
	case modeSearch:
		b.WriteString("/" + m.input.View())
	default:
		if m.query != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf("filter: %q (esc to clear)", m.query)))
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(truncate("Error: "+m.err.Error(), m.width)))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(warnStyle.Render(truncate(m.notice, m.width)))
		b.WriteString("\n")
	}

	parts := make([]string, 0, len(m.keys.short()))
	for _, k := range m.keys.short() {
		h := k.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	status := fmt.Sprintf(" %d tasks | %s", m.board.Len(), strings.Join(parts, " "))
	b.WriteString(statusBarStyle.Render(truncate(status, m.width)))
	return b.String()
}

func (m *Board) viewHelp() string {
	if m.help == "" {
		m.help = renderHelp(m.width)
	}
	return dialogStyle.Render(strings.TrimSpace(m.help) + "\n\n" + dimStyle.Render("any key to close"))
}

func (m *Board) viewDeleteConfirm() string {
	v, _ := m.selected()
	content := errorStyle.Render("Delete task?") + "\n\n" +
		"  " + v.Text + "\n\n" +
		dimStyle.Render("y:yes  n:no")
	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
