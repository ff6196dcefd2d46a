// Package task defines the task record, its recurrence rules and its
// due-date classification.
package task

import "slices"

// Level is the weight tag of a task. It only affects display grouping.
type Level string

// Levels, lightest first.
const (
	LevelLight  Level = "light"
	LevelMiddle Level = "middle"
	LevelDeep   Level = "deep"
)

// Levels returns all levels in display order.
func Levels() []Level {
	return []Level{LevelLight, LevelMiddle, LevelDeep}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return slices.Contains(Levels(), l)
}

// Repeat is the recurrence rule of a task.
type Repeat string

// Recurrence rules.
const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// Repeats returns all recurrence rules.
func Repeats() []Repeat {
	return []Repeat{RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly}
}

// Valid reports whether r is a known rule.
func (r Repeat) Valid() bool {
	return slices.Contains(Repeats(), r)
}

// Task is the persisted unit of state. Its JSON form is the durable shape
// written by the store.
type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Level     Level  `json:"level"`
	Date      string `json:"date"` // YYYY-MM-DD or "" for no due date
	Repeat    Repeat `json:"repeat"`
}

// Flags holds the derived due-date state of a task. Never persisted.
type Flags struct {
	Expired bool `json:"expired"`
	Today   bool `json:"today"`
}

// View is a task as presented for rendering: its position in the current
// ordering plus derived flags.
type View struct {
	Position int `json:"position"`
	Task
	Flags
}

// ReadWarning describes a stored record or blob that could not be used as-is.
type ReadWarning struct {
	Source string // record position or store key
	Err    error
}
