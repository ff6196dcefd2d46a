package board

import (
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// FilterOptions defines which tasks to include. Zero values mean no filter.
type FilterOptions struct {
	Search    string // case-insensitive substring match on the text
	Levels    []task.Level
	Repeats   []task.Repeat
	Completed *bool // nil=no filter, true=only completed, false=only pending
	Pending   bool  // shorthand for Completed=false
	Expired   bool  // only tasks flagged expired
	Today     bool  // only tasks due today
	Limit     int
}

// Filter returns the views matching all criteria (AND logic), preserving
// order. Positions are kept so callers can still address the source tasks.
func Filter(views []task.View, opts FilterOptions) []task.View {
	result := make([]task.View, 0, len(views))
	for _, v := range views {
		if matchesFilter(v, opts) {
			result = append(result, v)
		}
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}

func matchesFilter(v task.View, opts FilterOptions) bool {
	if opts.Search != "" && !strings.Contains(strings.ToLower(v.Text), strings.ToLower(opts.Search)) {
		return false
	}
	if len(opts.Levels) > 0 && !slices.Contains(opts.Levels, v.Level) {
		return false
	}
	if len(opts.Repeats) > 0 && !slices.Contains(opts.Repeats, v.Repeat) {
		return false
	}
	if opts.Completed != nil && v.Completed != *opts.Completed {
		return false
	}
	if opts.Pending && v.Completed {
		return false
	}
	if opts.Expired && !v.Expired {
		return false
	}
	if opts.Today && !v.Today {
		return false
	}
	return true
}
