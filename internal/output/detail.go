package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// TaskDetail renders a single task with every field on its own line.
func TaskDetail(w io.Writer, v task.View) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("#%d %s", v.Position+1, v.Text)))

	status := "pending"
	if v.Completed {
		status = completedStyle.Render("completed")
	}
	printField(w, "Status", status)
	printField(w, "Level", styledValue(string(v.Level), levelStyles))

	due := v.Date
	if due == "" {
		due = dimStyle.Render("none")
	}
	if label := stateLabel(v); label != "" {
		due += " (" + label + ")"
	}
	printField(w, "Due", due)
	printField(w, "Repeat", string(v.Repeat))
}

// TaskDetailCompact renders a single task as one line.
func TaskDetailCompact(w io.Writer, v task.View) {
	fmt.Fprintln(w, FormatTaskLine(v))
}

// ActivityTable renders activity log entries, oldest first.
func ActivityTable(w io.Writer, entries []board.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	header := fmt.Sprintf("%-19s  %-8s  %4s  %s", "TIME", "ACTION", "#", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		pos := dimStyle.Render("  --")
		if e.Position > 0 {
			pos = fmt.Sprintf("%4d", e.Position)
		}
		fmt.Fprintf(w, "%-19s  %-8s  %s  %s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Action, pos, e.Detail)
	}
}

// ActivityCompact renders activity log entries one per line.
func ActivityCompact(w io.Writer, entries []board.LogEntry) {
	for _, e := range entries {
		line := e.Timestamp.Local().Format(time.RFC3339) + " " + e.Action
		if e.Position > 0 {
			line += fmt.Sprintf(" #%d", e.Position)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-8s %s\n", label+":", value)
}
