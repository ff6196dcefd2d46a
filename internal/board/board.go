// Package board owns the task collection at runtime and drives its
// lifecycle: recurrence advancement, classification and ordering.
package board

import (
	"strconv"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/date"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// Store persists the full collection. Save always receives a complete
// snapshot in current order.
type Store interface {
	Load() ([]task.Task, []task.ReadWarning, error)
	Save(tasks []task.Task) error
}

// Recorder receives one entry per mutation.
type Recorder interface {
	Record(action string, pos int, detail string)
}

// Option configures a Board.
type Option func(*Board)

// WithClock overrides the clock that defines "today".
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithRecorder attaches an activity recorder.
func WithRecorder(r Recorder) Option {
	return func(b *Board) { b.rec = r }
}

// Board is the task collection plus the operations the presentation layer
// calls. It is not safe for concurrent use; callers deliver one event at a
// time.
type Board struct {
	store Store
	now   func() time.Time
	rec   Recorder
	items []task.View
}

// Open loads the collection from s. The returned board is in stored order
// with flags classified; call Activate or Refresh to sort it.
func Open(s Store, opts ...Option) (*Board, []task.ReadWarning, error) {
	b := &Board{store: s, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	warnings, err := b.Reload()
	if err != nil {
		return nil, nil, err
	}
	return b, warnings, nil
}

// Reload replaces the in-memory collection with the stored one and
// classifies it. Stored order is kept, so a reorder saved by another
// process (or by this one) survives the reload.
func (b *Board) Reload() ([]task.ReadWarning, error) {
	tasks, warnings, err := b.store.Load()
	if err != nil {
		return nil, err
	}
	b.items = make([]task.View, len(tasks))
	for i, t := range tasks {
		b.items[i] = task.View{Position: i, Task: t}
	}
	ClassifyAll(b.items, b.Today())
	return warnings, nil
}

// Today returns the current local calendar date.
func (b *Board) Today() date.Date {
	return date.FromTime(b.now())
}

// Activate runs the activation sequence: advance recurring tasks and save,
// then classify, then sort. The sorted order is not saved; callers that
// hand out positions follow with Save so stored order matches what they
// display. It returns how many tasks were advanced.
func (b *Board) Activate() (int, error) {
	today := b.Today()
	advanced := AdvanceRecurring(b.items, today)
	if err := b.save(); err != nil {
		return advanced, err
	}
	if advanced > 0 {
		b.record("advance", -1, pluralTasks(advanced))
	}
	ClassifyAll(b.items, today)
	SortByDate(b.items)
	b.renumber()
	return advanced, nil
}

// Refresh recomputes flags and ordering without advancing or saving.
func (b *Board) Refresh() {
	ClassifyAll(b.items, b.Today())
	SortByDate(b.items)
	b.renumber()
}

// Save persists the collection in current order.
func (b *Board) Save() error {
	return b.save()
}

// Snapshot returns the collection in current order with derived flags.
func (b *Board) Snapshot() []task.View {
	out := make([]task.View, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of tasks.
func (b *Board) Len() int {
	return len(b.items)
}

// Add appends a new task and saves. Text is trimmed; empty text is ignored
// and reported as added == false with no error. Empty level and repeat
// default to light and none.
func (b *Board) Add(text, level, due, repeat string) (added bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	l, err := task.ParseLevel(level)
	if err != nil {
		return false, err
	}
	r, err := task.ParseRepeat(repeat)
	if err != nil {
		return false, err
	}
	d, err := task.ParseDue(due)
	if err != nil {
		return false, err
	}

	b.items = append(b.items, task.View{
		Position: len(b.items),
		Task:     task.Task{Text: text, Level: l, Date: d, Repeat: r},
	})
	if err := b.save(); err != nil {
		return true, err
	}
	b.record("add", len(b.items)-1, text)
	return true, nil
}

// Delete removes the task at pos and saves. It returns the removed task.
func (b *Board) Delete(pos int) (task.Task, error) {
	if err := task.ValidatePosition(pos, len(b.items)); err != nil {
		return task.Task{}, err
	}
	removed := b.items[pos].Task
	b.items = append(b.items[:pos], b.items[pos+1:]...)
	b.renumber()
	if err := b.save(); err != nil {
		return removed, err
	}
	b.record("delete", pos, removed.Text)
	return removed, nil
}

// Toggle flips the completed state of the task at pos and saves.
func (b *Board) Toggle(pos int) (completed bool, err error) {
	if err := task.ValidatePosition(pos, len(b.items)); err != nil {
		return false, err
	}
	t := &b.items[pos].Task
	t.Completed = !t.Completed
	if err := b.save(); err != nil {
		return t.Completed, err
	}
	action := "reopen"
	if t.Completed {
		action = "complete"
	}
	b.record(action, pos, t.Text)
	return t.Completed, nil
}

// EditText commits an inline text edit. Empty (after trimming) text keeps
// the current text. The collection is saved either way.
func (b *Board) EditText(pos int, text string) error {
	if err := task.ValidatePosition(pos, len(b.items)); err != nil {
		return err
	}
	t := &b.items[pos].Task
	if text = strings.TrimSpace(text); text != "" {
		t.Text = text
	}
	if err := b.save(); err != nil {
		return err
	}
	b.record("edit", pos, t.Text)
	return nil
}

// Patch is a partial update. A nil field means "no change"; an empty Date
// clears the due date.
type Patch struct {
	Text   *string
	Level  *string
	Date   *string
	Repeat *string
}

// Edit applies p to the task at pos and saves. The edited task's flags are
// recomputed; ordering is left alone until the next activation.
func (b *Board) Edit(pos int, p Patch) (task.Task, error) {
	if err := task.ValidatePosition(pos, len(b.items)); err != nil {
		return task.Task{}, err
	}
	if p.Text == nil && p.Level == nil && p.Date == nil && p.Repeat == nil {
		return task.Task{}, clierr.New(clierr.NoChanges, "no changes specified")
	}

	updated := b.items[pos].Task
	if p.Text != nil {
		text := strings.TrimSpace(*p.Text)
		if text == "" {
			return task.Task{}, clierr.New(clierr.InvalidInput, "task text cannot be empty")
		}
		updated.Text = text
	}
	if p.Level != nil {
		l, err := task.ParseLevel(*p.Level)
		if err != nil {
			return task.Task{}, err
		}
		updated.Level = l
	}
	if p.Date != nil {
		d, err := task.ParseDue(*p.Date)
		if err != nil {
			return task.Task{}, err
		}
		updated.Date = d
	}
	if p.Repeat != nil {
		r, err := task.ParseRepeat(*p.Repeat)
		if err != nil {
			return task.Task{}, err
		}
		updated.Repeat = r
	}

	b.items[pos].Task = updated
	b.items[pos].Flags = task.Classify(updated, b.Today())
	if err := b.save(); err != nil {
		return updated, err
	}
	b.record("edit", pos, updated.Text)
	return updated, nil
}

// Reorder moves the task at from so that it ends up at index to, then saves.
func (b *Board) Reorder(from, to int) error {
	n := len(b.items)
	if err := task.ValidatePosition(from, n); err != nil {
		return err
	}
	if to < 0 || to >= n {
		return clierr.Newf(clierr.InvalidPosition, "target position %d out of range 1-%d", to+1, n).
			WithDetails(map[string]any{
				"position": to + 1,
				"count":    n,
			})
	}

	moved := b.items[from]
	b.items = append(b.items[:from], b.items[from+1:]...)
	b.items = append(b.items[:to], append([]task.View{moved}, b.items[to:]...)...)
	b.renumber()
	if err := b.save(); err != nil {
		return err
	}
	b.record("move", to, moved.Text)
	return nil
}

func (b *Board) save() error {
	tasks := make([]task.Task, len(b.items))
	for i, v := range b.items {
		tasks[i] = v.Task
	}
	if err := b.store.Save(tasks); err != nil {
		return clierr.Newf(clierr.StoreUnavailable, "saving tasks: %v", err)
	}
	return nil
}

func (b *Board) renumber() {
	for i := range b.items {
		b.items[i].Position = i
	}
}

func (b *Board) record(action string, pos int, detail string) {
	if b.rec != nil {
		b.rec.Record(action, pos, detail)
	}
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return strconv.Itoa(n) + " tasks"
}
