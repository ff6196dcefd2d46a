package task

import "github.com/twiced-technology-gmbh/deepsea/internal/date"

const daysPerWeek = 7

// Advance returns the next due date after d under rule r.
// Monthly keeps the day-of-month and lets short months roll over into the
// following month. RepeatNone returns d unchanged.
func Advance(d date.Date, r Repeat) date.Date {
	switch r {
	case RepeatDaily:
		return d.AddDays(1)
	case RepeatWeekly:
		return d.AddDays(daysPerWeek)
	case RepeatMonthly:
		return d.AddMonths(1)
	default:
		return d
	}
}
