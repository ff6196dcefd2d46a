package board

import (
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// LevelSummary holds counts for a single level.
type LevelSummary struct {
	Level     task.Level `json:"level"`
	Total     int        `json:"total"`
	Pending   int        `json:"pending"`
	Completed int        `json:"completed"`
}

// RepeatCount holds the number of tasks using a recurrence rule.
type RepeatCount struct {
	Repeat task.Repeat `json:"repeat"`
	Count  int         `json:"count"`
}

// Overview is the aggregate view of the collection.
type Overview struct {
	Name      string         `json:"name"`
	Today     string         `json:"today"`
	Total     int            `json:"total"`
	Pending   int            `json:"pending"`
	Completed int            `json:"completed"`
	Expired   int            `json:"expired"`
	DueToday  int            `json:"due_today"`
	Undated   int            `json:"undated"`
	Levels    []LevelSummary `json:"levels"`
	Repeats   []RepeatCount  `json:"repeats"`
}

// Summary computes an overview of the collection as last classified.
func (b *Board) Summary(name string) Overview {
	o := Summarize(b.items)
	o.Name = name
	o.Today = b.Today().String()
	return o
}

// Summarize computes counts over views. Expired and due-today counts include
// only pending tasks.
func Summarize(views []task.View) Overview {
	levels := task.Levels()
	byLevel := make(map[task.Level]*LevelSummary, len(levels))
	repeats := task.Repeats()
	byRepeat := make(map[task.Repeat]*RepeatCount, len(repeats))
	o := Overview{
		Levels:  make([]LevelSummary, len(levels)),
		Repeats: make([]RepeatCount, len(repeats)),
	}
	for i, l := range levels {
		o.Levels[i].Level = l
		byLevel[l] = &o.Levels[i]
	}
	for i, r := range repeats {
		o.Repeats[i].Repeat = r
		byRepeat[r] = &o.Repeats[i]
	}

	for _, v := range views {
		o.Total++
		ls := byLevel[v.Level]
		if ls != nil {
			ls.Total++
		}
		if rc := byRepeat[v.Repeat]; rc != nil {
			rc.Count++
		}
		if _, ok := v.DueDate(); !ok {
			o.Undated++
		}
		if v.Completed {
			o.Completed++
			if ls != nil {
				ls.Completed++
			}
			continue
		}
		o.Pending++
		if ls != nil {
			ls.Pending++
		}
		if v.Expired {
			o.Expired++
		}
		if v.Today {
			o.DueToday++
		}
	}
	return o
}
