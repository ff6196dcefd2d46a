package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		{Text: "Buy supplies", Level: task.LevelLight, Date: "2020-01-01", Repeat: task.RepeatDaily},
		{Text: "Dive", Completed: true, Level: task.LevelDeep, Date: "", Repeat: task.RepeatNone},
		{Text: "Report", Level: task.LevelMiddle, Date: "2025-06-15", Repeat: task.RepeatMonthly},
	}
}

func TestMemoryBlobs_GetPut(t *testing.T) {
	b := NewMemoryBlobs()

	_, err := b.Get("k")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, b.Put("k", []byte("v1")))
	got, err := b.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	got[0] = 'x'
	again, _ := b.Get("k")
	assert.Equal(t, []byte("v1"), again)
}

func TestFileBlobs_GetPut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	b, err := NewFileBlobs(dir)
	require.NoError(t, err)

	_, err = b.Get("deepsea_todos")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, b.Put("deepsea_todos", []byte("[]")))
	require.NoError(t, b.Put("deepsea_todos", []byte(`[{"text":"a"}]`)))

	got, err := b.Get("deepsea_todos")
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"a"}]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp files must be renamed away")
	}
}

func TestFileBlobs_RejectsPathKeys(t *testing.T) {
	b, err := NewFileBlobs(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, b.Put("../escape", []byte("x")))
	_, err = b.Get("a/b")
	assert.Error(t, err)
}

func TestWriteLock_Reacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	lock, err := acquireWriteLock(path)
	require.NoError(t, err)
	require.NoError(t, lock.release())

	lock, err = acquireWriteLock(path)
	require.NoError(t, err, "a released lock can be taken again")
	require.NoError(t, lock.release())
}

func TestFileBlobs_ConcurrentPutsStayWhole(t *testing.T) {
	b, err := NewFileBlobs(t.TempDir())
	require.NoError(t, err)

	values := []string{`["a"]`, `["bb"]`, `["ccc"]`, `["dddd"]`}
	var wg sync.WaitGroup
	for _, v := range values {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, b.Put("k", []byte(v)))
		}()
	}
	wg.Wait()

	got, err := b.Get("k")
	require.NoError(t, err)
	assert.Contains(t, values, string(got))
}

func TestSQLBlobs_GetPut(t *testing.T) {
	b, err := NewSQLBlobs(filepath.Join(t.TempDir(), "db", "deepsea.db"))
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Get("deepsea_todos")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, b.Put("deepsea_todos", []byte("[]")))
	require.NoError(t, b.Put("deepsea_todos", []byte(`[{"text":"b"}]`)))

	got, err := b.Get("deepsea_todos")
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"b"}]`, string(got))
}

func TestAdapter_MissingKeyIsEmpty(t *testing.T) {
	a := NewAdapter(NewMemoryBlobs(), "")
	assert.Equal(t, DefaultKey, a.Key())

	tasks, warnings, err := a.Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestAdapter_RoundTrip(t *testing.T) {
	for name, blobs := range map[string]func(t *testing.T) Blobs{
		"memory": func(*testing.T) Blobs { return NewMemoryBlobs() },
		"file": func(t *testing.T) Blobs {
			b, err := NewFileBlobs(t.TempDir())
			require.NoError(t, err)
			return b
		},
	} {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(blobs(t), DefaultKey)
			require.NoError(t, a.Save(sampleTasks()))

			got, warnings, err := a.Load()
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, sampleTasks(), got)
		})
	}
}

func TestAdapter_WireFormat(t *testing.T) {
	blobs := NewMemoryBlobs()
	a := NewAdapter(blobs, DefaultKey)
	require.NoError(t, a.Save(sampleTasks()[:1]))

	raw, err := blobs.Get(DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"text":"Buy supplies","completed":false,"level":"light","date":"2020-01-01","repeat":"daily"}]`,
		string(raw))
}

func TestAdapter_CorruptBlobFailsClosed(t *testing.T) {
	for _, raw := range []string{"{not json", `{"text":"x"}`, `[1,2]`} {
		blobs := NewMemoryBlobs()
		require.NoError(t, blobs.Put(DefaultKey, []byte(raw)))

		tasks, warnings, err := NewAdapter(blobs, DefaultKey).Load()
		require.NoError(t, err, raw)
		assert.Empty(t, tasks, raw)
		assert.Len(t, warnings, 1, raw)
	}
}

func TestAdapter_NormalizesLegacyRecords(t *testing.T) {
	blobs := NewMemoryBlobs()
	require.NoError(t, blobs.Put(DefaultKey, []byte(`[{"text":"old"},{"text":"odd","level":"abyss","repeat":"yearly"}]`)))

	tasks, warnings, err := NewAdapter(blobs, DefaultKey).Load()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, task.LevelLight, tasks[0].Level)
	assert.Equal(t, task.RepeatNone, tasks[0].Repeat)
	assert.Equal(t, task.LevelLight, tasks[1].Level)
	assert.Equal(t, task.RepeatNone, tasks[1].Repeat)
	assert.Len(t, warnings, 2)
}

type failingBlobs struct{}

func (failingBlobs) Get(string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingBlobs) Put(string, []byte) error   { return errors.New("disk on fire") }

func TestAdapter_StorageErrorsPropagate(t *testing.T) {
	a := NewAdapter(failingBlobs{}, DefaultKey)

	_, _, err := a.Load()
	assert.Error(t, err)
	assert.Error(t, a.Save(nil))
}
