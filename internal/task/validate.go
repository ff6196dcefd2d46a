package task

import (
	"fmt"
	"strings"

	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/date"
)

// ParseLevel validates a level string. Empty input yields LevelLight.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return LevelLight, nil
	}
	l := Level(s)
	if !l.Valid() {
		return "", clierr.Newf(clierr.InvalidLevel, "invalid level %q", s).
			WithDetails(map[string]any{
				"level":   s,
				"allowed": Levels(),
			})
	}
	return l, nil
}

// ParseRepeat validates a recurrence rule string. Empty input yields RepeatNone.
func ParseRepeat(s string) (Repeat, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return RepeatNone, nil
	}
	r := Repeat(s)
	if !r.Valid() {
		return "", clierr.Newf(clierr.InvalidRepeat, "invalid repeat rule %q", s).
			WithDetails(map[string]any{
				"repeat":  s,
				"allowed": Repeats(),
			})
	}
	return r, nil
}

// ParseDue validates a due date and returns it in canonical form.
// Empty input means no due date.
func ParseDue(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return "", ValidateDate("due", s, err)
	}
	return d.String(), nil
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidatePosition returns a CLIError when pos does not address a task in a
// collection of n tasks.
func ValidatePosition(pos, n int) error {
	if pos >= 0 && pos < n {
		return nil
	}
	return clierr.Newf(clierr.TaskNotFound, "task not found at position %d", pos+1).
		WithDetails(map[string]any{
			"position": pos + 1,
			"count":    n,
		})
}

// Normalize fills defaults for records read from storage. Unknown levels
// become light and unknown rules become none; each replacement is reported.
func Normalize(t *Task) []error {
	var errs []error
	if t.Level == "" {
		t.Level = LevelLight
	} else if !t.Level.Valid() {
		errs = append(errs, fmt.Errorf("unknown level %q, using %q", t.Level, LevelLight))
		t.Level = LevelLight
	}
	if t.Repeat == "" {
		t.Repeat = RepeatNone
	} else if !t.Repeat.Valid() {
		errs = append(errs, fmt.Errorf("unknown repeat rule %q, using %q", t.Repeat, RepeatNone))
		t.Repeat = RepeatNone
	}
	return errs
}
