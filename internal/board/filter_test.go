package board

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

func sampleViews() []task.View {
	return []task.View{
		{Position: 0, Task: task.Task{Text: "Pay rent", Level: task.LevelMiddle, Date: "2025-06-01", Repeat: task.RepeatMonthly}, Flags: task.Flags{Expired: true}},
		{Position: 1, Task: task.Task{Text: "Stretch", Level: task.LevelLight, Date: "2025-06-15", Repeat: task.RepeatDaily}, Flags: task.Flags{Today: true}},
		{Position: 2, Task: task.Task{Text: "Write thesis", Level: task.LevelDeep, Repeat: task.RepeatNone}},
		{Position: 3, Task: task.Task{Text: "Pay taxes", Completed: true, Level: task.LevelDeep, Date: "2025-04-30", Repeat: task.RepeatNone}, Flags: task.Flags{Expired: true}},
	}
}

func TestFilter(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"no filter", FilterOptions{}, []string{"Pay rent", "Stretch", "Write thesis", "Pay taxes"}},
		{"search is case-insensitive", FilterOptions{Search: "PAY"}, []string{"Pay rent", "Pay taxes"}},
		{"levels", FilterOptions{Levels: []task.Level{task.LevelDeep}}, []string{"Write thesis", "Pay taxes"}},
		{"repeats", FilterOptions{Repeats: []task.Repeat{task.RepeatDaily, task.RepeatMonthly}}, []string{"Pay rent", "Stretch"}},
		{"completed", FilterOptions{Completed: &yes}, []string{"Pay taxes"}},
		{"pending and expired", FilterOptions{Completed: &no, Expired: true}, []string{"Pay rent"}},
		{"today", FilterOptions{Today: true}, []string{"Stretch"}},
		{"pending", FilterOptions{Pending: true}, []string{"Pay rent", "Stretch", "Write thesis"}},
		{"limit", FilterOptions{Limit: 2}, []string{"Pay rent", "Stretch"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(Filter(sampleViews(), tt.opts)))
		})
	}
}

func TestFilter_KeepsPositions(t *testing.T) {
	got := Filter(sampleViews(), FilterOptions{Search: "taxes"})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Position)
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(sampleViews(), "level")
	require.Len(t, groups, 3)
	assert.Equal(t, "light", groups[0].Key)
	assert.Equal(t, "middle", groups[1].Key)
	assert.Equal(t, "deep", groups[2].Key)
	assert.Equal(t, []string{"Write thesis", "Pay taxes"}, texts(groups[2].Tasks))
	assert.Equal(t, 2, groups[2].Total)

	groups = GroupBy(sampleViews(), "status")
	require.Len(t, groups, 2)
	assert.Equal(t, "pending", groups[0].Key)
	assert.Equal(t, 3, groups[0].Total)

	groups = GroupBy(sampleViews(), "repeat")
	assert.Equal(t, "none", groups[0].Key, "empty buckets are omitted, order follows the rules")
	assert.Len(t, groups, 3)
}

func TestSummarize(t *testing.T) {
	o := Summarize(sampleViews())
	assert.Equal(t, 4, o.Total)
	assert.Equal(t, 3, o.Pending)
	assert.Equal(t, 1, o.Completed)
	assert.Equal(t, 1, o.Expired, "completed tasks are not counted as expired")
	assert.Equal(t, 1, o.DueToday)
	assert.Equal(t, 1, o.Undated)
	assert.Equal(t, []RepeatCount{
		{Repeat: task.RepeatNone, Count: 2},
		{Repeat: task.RepeatDaily, Count: 1},
		{Repeat: task.RepeatWeekly, Count: 0},
		{Repeat: task.RepeatMonthly, Count: 1},
	}, o.Repeats)
	assert.Equal(t, []LevelSummary{
		{Level: task.LevelLight, Total: 1, Pending: 1},
		{Level: task.LevelMiddle, Total: 1, Pending: 1},
		{Level: task.LevelDeep, Total: 2, Pending: 1, Completed: 1},
	}, o.Levels)
}

func TestBoardSummary(t *testing.T) {
	b, _ := seed(t, task.Task{Text: "x", Level: task.LevelLight, Date: "2025-06-15", Repeat: task.RepeatNone})
	b.Refresh()

	o := b.Summary("home")
	assert.Equal(t, "home", o.Name)
	assert.Equal(t, "2025-06-15", o.Today)
	assert.Equal(t, 1, o.DueToday)
}

func TestActivityLog(t *testing.T) {
	dir := t.TempDir()
	l := NewActivityLog(dir)
	l.now = clock

	entries, err := l.ReadLog(0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	l.Record("add", 0, "Dive")
	l.Record("advance", -1, "2 tasks")
	l.Record("complete", 4, "Dive")

	assert.Equal(t, filepath.Join(dir, "activity.jsonl"), l.Path())

	entries, err = l.ReadLog(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "advance", entries[0].Action)
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, "complete", entries[1].Action)
	assert.Equal(t, 5, entries[1].Position)
	assert.True(t, entries[1].Timestamp.Equal(fixedNow))
}
