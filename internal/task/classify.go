package task

import "github.com/twiced-technology-gmbh/deepsea/internal/date"

// DueDate parses the task's date. ok is false when the task has no date or
// the stored value cannot be parsed; such tasks are treated as undated.
func (t Task) DueDate() (d date.Date, ok bool) {
	if t.Date == "" {
		return date.Date{}, false
	}
	d, err := date.Parse(t.Date)
	if err != nil {
		return date.Date{}, false
	}
	return d, true
}

// SortKey returns the date used for ordering. Undated tasks get date.Far.
func (t Task) SortKey() date.Date {
	if d, ok := t.DueDate(); ok {
		return d
	}
	return date.Far
}

// Classify derives the expired and today flags of t relative to today.
func Classify(t Task, today date.Date) Flags {
	d, ok := t.DueDate()
	if !ok {
		return Flags{}
	}
	return Flags{
		Expired: d.Before(today),
		Today:   d.Equal(today),
	}
}
