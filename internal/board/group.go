package board

import (
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

const (
	fieldLevel  = "level"
	fieldRepeat = "repeat"
	fieldStatus = "status"

	statusPending   = "pending"
	statusCompleted = "completed"
)

// Group is one bucket of a grouped listing.
type Group struct {
	Key   string      `json:"key"`
	Tasks []task.View `json:"tasks"`
	Total int         `json:"total"`
}

// GroupBy buckets views by field, keeping their order within each bucket.
// Buckets come out in the field's natural order (light..deep, none..monthly,
// pending before completed); empty buckets are omitted.
func GroupBy(views []task.View, field string) []Group {
	keys := groupKeys(field)
	buckets := make(map[string][]task.View, len(keys))
	for _, v := range views {
		k := groupKey(v, field)
		buckets[k] = append(buckets[k], v)
	}

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		if len(buckets[k]) == 0 {
			continue
		}
		groups = append(groups, Group{Key: k, Tasks: buckets[k], Total: len(buckets[k])})
	}
	return groups
}

func groupKey(v task.View, field string) string {
	switch field {
	case fieldLevel:
		return string(v.Level)
	case fieldRepeat:
		return string(v.Repeat)
	case fieldStatus:
		if v.Completed {
			return statusCompleted
		}
		return statusPending
	default:
		return "(all)"
	}
}

func groupKeys(field string) []string {
	var keys []string
	switch field {
	case fieldLevel:
		for _, l := range task.Levels() {
			keys = append(keys, string(l))
		}
	case fieldRepeat:
		for _, r := range task.Repeats() {
			keys = append(keys, string(r))
		}
	case fieldStatus:
		keys = []string{statusPending, statusCompleted}
	default:
		keys = []string{"(all)"}
	}
	return keys
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{fieldLevel, fieldRepeat, fieldStatus}
}
