package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// TaskCompact renders views in one-line-per-record compact format.
func TaskCompact(w io.Writer, views []task.View) {
	if len(views) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, v := range views {
		fmt.Fprintln(w, FormatTaskLine(v))
	}
}

// GroupedCompact renders grouped views in compact format.
func GroupedCompact(w io.Writer, groups []board.Group) {
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d tasks)\n", g.Key, g.Total)
		for _, v := range g.Tasks {
			fmt.Fprintln(w, "  "+FormatTaskLine(v))
		}
	}
}

// OverviewCompact renders a summary in compact format.
func OverviewCompact(w io.Writer, o board.Overview) {
	fmt.Fprintf(w, "%s (%d tasks) today:%s\n", o.Name, o.Total, o.Today)
	fmt.Fprintf(w, "  pending:%d completed:%d expired:%d due-today:%d undated:%d\n",
		o.Pending, o.Completed, o.Expired, o.DueToday, o.Undated)

	parts := make([]string, 0, len(o.Levels))
	for _, ls := range o.Levels {
		parts = append(parts, string(ls.Level)+"="+strconv.Itoa(ls.Total))
	}
	fmt.Fprintln(w, "Level: "+strings.Join(parts, " "))

	parts = parts[:0]
	for _, rc := range o.Repeats {
		parts = append(parts, string(rc.Repeat)+"="+strconv.Itoa(rc.Count))
	}
	fmt.Fprintln(w, "Repeat: "+strings.Join(parts, " "))
}

// FormatTaskLine builds the one-line representation of a view.
func FormatTaskLine(v task.View) string {
	mark := " "
	if v.Completed {
		mark = "x"
	}
	line := "#" + strconv.Itoa(v.Position+1) + " [" + mark + "] (" + string(v.Level) + ") " + v.Text

	if v.Date != "" {
		line += " due:" + v.Date
	}
	if v.Repeat != task.RepeatNone {
		line += " every:" + string(v.Repeat)
	}
	switch {
	case v.Expired:
		line += " !expired"
	case v.Today:
		line += " !today"
	}
	return line
}
