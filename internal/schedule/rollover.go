// Package schedule runs wall-clock jobs for long-lived processes, such as
// re-activating the task list when the local date changes.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Rollover wraps a cron scheduler for daily jobs.
type Rollover struct {
	cron *cron.Cron
}

// NewRollover returns a scheduler evaluating specs in loc.
func NewRollover(loc *time.Location) *Rollover {
	if loc == nil {
		loc = time.Local
	}
	return &Rollover{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleDaily registers a daily job at the given HH:MM time string.
func (r *Rollover) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return r.cron.AddFunc(spec, job)
}

// Next returns the next run time of the entry, or the zero time when the
// scheduler has not been started.
func (r *Rollover) Next(id cron.EntryID) time.Time {
	return r.cron.Entry(id).Next
}

// Start runs the scheduler in its own goroutine.
func (r *Rollover) Start() {
	r.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (r *Rollover) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func buildDailySpec(timeStr string) (string, error) {
	hourStr, minuteStr, ok := strings.Cut(strings.TrimSpace(timeStr), ":")
	if !ok {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
