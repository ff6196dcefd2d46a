package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# deepsea

Tasks are sorted by due date. Undated tasks sink to the end of the list.

| Key | Action |
|-----|--------|
| j / k | move the cursor |
| space / enter | mark done or not done |
| a | add a task |
| e | edit the task text |
| d | delete the task |
| J / K | move the task down or up |
| / | search by text |
| ? | toggle this help |
| q | quit |

## Adding

Type the text, press enter, then give the optional details on one line,
in any order: a level (light, middle, deep), a due date (YYYY-MM-DD) and
a repeat rule (daily, weekly, monthly). Leave it blank for the defaults.

## Recurring tasks

When a recurring task's due date has passed, it moves forward by one
period each time the list is activated: at startup, after adding a task,
and at the daily rollover.

**Expired** tasks are dimmed. Tasks due **today** are highlighted.
`

// renderHelp renders the help text for the given width, falling back to
// the raw markdown when rendering fails.
func renderHelp(width int) string {
	const minWidth = 40
	width = max(width-2*dialogPadX-2, minWidth)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
