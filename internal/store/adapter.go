package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// DefaultKey is the key the task collection is stored under.
const DefaultKey = "deepsea_todos"

// Adapter converts the task collection to and from a single JSON blob.
type Adapter struct {
	blobs Blobs
	key   string
}

// NewAdapter returns an Adapter storing the collection under key.
// An empty key selects DefaultKey.
func NewAdapter(blobs Blobs, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{blobs: blobs, key: key}
}

// Key returns the key the collection is stored under.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the collection. A missing key is an empty collection. A blob
// that cannot be decoded also yields an empty collection, reported as a
// warning rather than an error. Records with unknown level or repeat values
// are normalized and reported.
func (a *Adapter) Load() ([]task.Task, []task.ReadWarning, error) {
	data, err := a.blobs.Get(a.key)
	if errors.Is(err, ErrNotFound) {
		return []task.Task{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", a.key, err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return []task.Task{}, []task.ReadWarning{{
			Source: a.key,
			Err:    fmt.Errorf("corrupt task data, starting with an empty list: %w", err),
		}}, nil
	}
	if tasks == nil {
		tasks = []task.Task{}
	}

	var warnings []task.ReadWarning
	for i := range tasks {
		for _, e := range task.Normalize(&tasks[i]) {
			warnings = append(warnings, task.ReadWarning{
				Source: a.key + "[" + strconv.Itoa(i+1) + "]",
				Err:    e,
			})
		}
	}
	return tasks, warnings, nil
}

// Save replaces the stored collection with tasks, in order.
func (a *Adapter) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := a.blobs.Put(a.key, data); err != nil {
		return fmt.Errorf("saving %s: %w", a.key, err)
	}
	return nil
}
