package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

func init() {
	DisableColor()
}

func view(pos int, text string, level task.Level, due string, repeat task.Repeat) task.View {
	return task.View{
		Position: pos,
		Task:     task.Task{Text: text, Level: level, Date: due, Repeat: repeat},
	}
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvOutput, "")
	assert.Equal(t, FormatTable, Detect(false, false, false))
	assert.Equal(t, FormatJSON, Detect(true, true, true))
	assert.Equal(t, FormatCompact, Detect(false, true, true))
	assert.Equal(t, FormatTable, Detect(false, true, false))

	t.Setenv(EnvOutput, "json")
	assert.Equal(t, FormatJSON, Detect(false, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))

	t.Setenv(EnvOutput, "oneline")
	assert.Equal(t, FormatCompact, Detect(false, false, false))
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat(" JSON ")
	assert.True(t, ok)
	assert.Equal(t, FormatJSON, f)

	f, ok = ParseFormat("oneline")
	assert.True(t, ok)
	assert.Equal(t, FormatCompact, f)

	_, ok = ParseFormat("yaml")
	assert.False(t, ok)
}

func TestFormatTaskLine(t *testing.T) {
	tests := []struct {
		name string
		v    task.View
		want string
	}{
		{
			name: "plain",
			v:    view(0, "Dive", task.LevelLight, "", task.RepeatNone),
			want: "#1 [ ] (light) Dive",
		},
		{
			name: "dated recurring expired",
			v: func() task.View {
				v := view(2, "Buy supplies", task.LevelDeep, "2025-06-14", task.RepeatDaily)
				v.Expired = true
				return v
			}(),
			want: "#3 [ ] (deep) Buy supplies due:2025-06-14 every:daily !expired",
		},
		{
			name: "completed today",
			v: func() task.View {
				v := view(1, "Report", task.LevelMiddle, "2025-06-15", task.RepeatNone)
				v.Completed = true
				v.Today = true
				return v
			}(),
			want: "#2 [x] (middle) Report due:2025-06-15 !today",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTaskLine(tt.v))
		})
	}
}

func TestTaskTable(t *testing.T) {
	var buf bytes.Buffer
	expired := view(0, "Old errand", task.LevelMiddle, "2025-06-01", task.RepeatWeekly)
	expired.Expired = true
	TaskTable(&buf, []task.View{expired, view(1, "Someday", task.LevelLight, "", task.RepeatNone)})

	out := buf.String()
	assert.Contains(t, out, "LEVEL")
	assert.Contains(t, out, "Old errand")
	assert.Contains(t, out, "weekly")
	assert.Contains(t, out, "expired")
	assert.Contains(t, out, "Someday")
}

func TestGroupedCompact(t *testing.T) {
	var buf bytes.Buffer
	GroupedCompact(&buf, []board.Group{{
		Key:   "deep",
		Tasks: []task.View{view(0, "Dive", task.LevelDeep, "", task.RepeatNone)},
		Total: 1,
	}})
	assert.Equal(t, "deep (1 tasks)\n  #1 [ ] (deep) Dive\n", buf.String())
}

func TestOverviewCompact(t *testing.T) {
	var buf bytes.Buffer
	OverviewCompact(&buf, board.Overview{
		Name: "home", Today: "2025-06-15", Total: 3, Pending: 2, Completed: 1, Expired: 1,
		Levels:  []board.LevelSummary{{Level: task.LevelLight, Total: 2}, {Level: task.LevelDeep, Total: 1}},
		Repeats: []board.RepeatCount{{Repeat: task.RepeatNone, Count: 3}},
	})
	out := buf.String()
	assert.Contains(t, out, "home (3 tasks) today:2025-06-15")
	assert.Contains(t, out, "pending:2 completed:1 expired:1")
	assert.Contains(t, out, "Level: light=2 deep=1")
	assert.Contains(t, out, "Repeat: none=3")
}

func TestTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	v := view(4, "Dentist", task.LevelMiddle, "2025-06-15", task.RepeatMonthly)
	v.Today = true
	TaskDetail(&buf, v)

	out := buf.String()
	assert.Contains(t, out, "#5 Dentist")
	assert.Contains(t, out, "2025-06-15 (today)")
	assert.Contains(t, out, "monthly")
}

func TestActivityCompact(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local)
	ActivityCompact(&buf, []board.LogEntry{
		{Timestamp: ts, Action: "add", Position: 2, Detail: "Dive"},
		{Timestamp: ts, Action: "advance", Detail: "1 task"},
	})
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "add #2 Dive")
	assert.Contains(t, string(lines[1]), "advance 1 task")
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, clierr.TaskNotFound, "task 9 not found", map[string]any{"position": 9})
	assert.JSONEq(t, `{"error":"task 9 not found","code":"TASK_NOT_FOUND","details":{"position":9}}`, buf.String())
}
