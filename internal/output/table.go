package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Level colors go darker with depth.
	levelStyles = map[string]lipgloss.Style{
		"light":  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		"middle": lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"deep":   lipgloss.NewStyle().Foreground(lipgloss.Color("19")).Bold(true),
	}

	expiredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
	todayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	repeatStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	levelStyles = map[string]lipgloss.Style{}
	expiredStyle = lipgloss.NewStyle()
	todayStyle = lipgloss.NewStyle()
	completedStyle = lipgloss.NewStyle()
	repeatStyle = lipgloss.NewStyle()
}

// TaskTable renders views as a formatted table. Positions are shown 1-based.
func TaskTable(w io.Writer, views []task.View) {
	if len(views) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	posW, doneW, levelW, textW, dueW, repeatW := 3, 6, 7, 6, 12, 8
	for _, v := range views {
		posW = max(posW, len(strconv.Itoa(v.Position+1))+pad)
		textW = max(textW, min(len(v.Text)+pad, 50)) //nolint:mnd // max text column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %s",
		posW, "#", doneW, "DONE", levelW, "LEVEL",
		textW, "TEXT", dueW, "DUE", repeatW, "REPEAT", "STATE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, v := range views {
		text := v.Text
		const maxText = 48
		if len(text) > maxText {
			text = text[:maxText-3] + "..."
		}
		switch {
		case v.Completed:
			text = completedStyle.Render(text)
		case v.Expired:
			text = expiredStyle.Render(text)
		case v.Today:
			text = todayStyle.Render(text)
		}

		done := "[ ]"
		if v.Completed {
			done = "[x]"
		}
		due := v.Date
		if due == "" {
			due = dimStyle.Render("--")
		}
		repeat := string(v.Repeat)
		if v.Repeat == task.RepeatNone {
			repeat = dimStyle.Render("--")
		} else {
			repeat = repeatStyle.Render(repeat)
		}

		row := fmt.Sprintf("%-*d %s %s %s %s %s %s",
			posW, v.Position+1,
			padRight(done, doneW),
			padRight(styledValue(string(v.Level), levelStyles), levelW),
			padRight(text, textW),
			padRight(due, dueW),
			padRight(repeat, repeatW),
			stateLabel(v))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// OverviewTable renders a summary as a formatted dashboard.
func OverviewTable(w io.Writer, o board.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(o.Name))
	fmt.Fprintf(w, "Today: %s\n", o.Today)
	fmt.Fprintf(w, "Total: %d tasks (%d pending, %d completed)\n", o.Total, o.Pending, o.Completed)
	fmt.Fprintf(w, "Expired: %s  Due today: %s  Undated: %d\n\n",
		expiredStyle.Render(strconv.Itoa(o.Expired)),
		todayStyle.Render(strconv.Itoa(o.DueToday)),
		o.Undated)

	const colW = 12
	header := fmt.Sprintf("%-*s %6s %8s %10s", colW, "LEVEL", "TOTAL", "PENDING", "COMPLETED")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, ls := range o.Levels {
		fmt.Fprintf(w, "%s %6d %8d %10d\n",
			padRight(styledValue(string(ls.Level), levelStyles), colW),
			ls.Total, ls.Pending, ls.Completed)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", colW, "REPEAT", "COUNT")))
	for _, rc := range o.Repeats {
		fmt.Fprintf(w, "%-*s %6d\n", colW, rc.Repeat, rc.Count)
	}
}

// GroupedTable renders views bucketed by a field, one table per group.
func GroupedTable(w io.Writer, groups []board.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s (%d tasks)", g.Key, g.Total)
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))
		TaskTable(w, g.Tasks)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func stateLabel(v task.View) string {
	switch {
	case v.Expired:
		return expiredStyle.Render("expired")
	case v.Today:
		return todayStyle.Render("today")
	default:
		return ""
	}
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
