// Package date provides a civil Date type that formats as YYYY-MM-DD.
package date

import (
	"fmt"
	"strings"
	"time"
)

const (
	format        = "2006-01-02"
	lenientFormat = "2006-1-2"
)

// Far is the sentinel far-future date used to order undated tasks last.
var Far = New(9999, time.December, 31) //nolint:mnd // sentinel year

// Date represents a calendar date without time or timezone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day. Out-of-range values are
// normalized the way time.Date normalizes them (Feb 30 becomes Mar 1/2).
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the local calendar date of t.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns today's date.
func Today() Date {
	return FromTime(time.Now())
}

// Parse parses a YYYY-MM-DD string into a Date. Unpadded month and day
// ("2025-6-5") are accepted; String always renders the canonical form.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(format, s)
	if err != nil {
		t, err = time.Parse(lenientFormat, s)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(format)
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// AddMonths returns the same day-of-month n months later. Days past the end
// of the target month roll into the following month (Jan 31 + 1 = Mar 3).
func (d Date) AddMonths(n int) Date {
	return Date{d.AddDate(0, n, 0)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	return d.Time.Compare(other.Time)
}
