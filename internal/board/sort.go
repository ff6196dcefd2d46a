package board

import (
	"sort"

	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// SortByDate orders views by due date, earliest first. Undated tasks and
// tasks whose date cannot be parsed sort last. The sort is stable, so tasks
// with equal dates keep their relative order.
func SortByDate(views []task.View) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].SortKey().Before(views[j].SortKey())
	})
}
