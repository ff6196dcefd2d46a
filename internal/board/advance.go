package board

import (
	"github.com/twiced-technology-gmbh/deepsea/internal/date"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// AdvanceRecurring moves each recurring task whose date is before today
// forward by exactly one step of its rule. A task far in the past therefore
// catches up one step per activation. Parseable dates are rewritten in
// canonical form; unparseable dates are left alone. It returns the number
// of tasks advanced.
func AdvanceRecurring(views []task.View, today date.Date) int {
	advanced := 0
	for i := range views {
		if advanceOne(&views[i].Task, today) {
			advanced++
		}
	}
	return advanced
}

func advanceOne(t *task.Task, today date.Date) bool {
	d, ok := t.DueDate()
	if !ok {
		return false
	}
	if t.Repeat == task.RepeatNone || !t.Repeat.Valid() || !d.Before(today) {
		t.Date = d.String()
		return false
	}
	t.Date = task.Advance(d, t.Repeat).String()
	return true
}

// ClassifyAll recomputes the derived flags of every view.
func ClassifyAll(views []task.View, today date.Date) {
	for i := range views {
		views[i].Flags = task.Classify(views[i].Task, today)
	}
}
