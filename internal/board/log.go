package board

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // oldest entries are dropped past this size
)

// LogEntry is a single activity log line.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Position  int       `json:"position,omitempty"` // 1-based; 0 for collection-wide actions
	Detail    string    `json:"detail"`
}

// ActivityLog appends mutation entries to <dir>/activity.jsonl.
// It implements Recorder.
type ActivityLog struct {
	dir string
	now func() time.Time
}

// NewActivityLog returns a log writing into dir.
func NewActivityLog(dir string) *ActivityLog {
	return &ActivityLog{dir: dir, now: time.Now}
}

// Path returns the log file path.
func (l *ActivityLog) Path() string {
	return filepath.Join(l.dir, logFileName)
}

// Record appends an entry for a mutation at the 0-based position pos
// (negative for collection-wide actions). Errors are discarded: logging
// never fails a command.
func (l *ActivityLog) Record(action string, pos int, detail string) {
	_ = l.Append(LogEntry{
		Timestamp: l.now(),
		Action:    action,
		Position:  pos + 1,
		Detail:    detail,
	})
}

// Append writes entry to the log, truncating the oldest entries when the
// log exceeds maxLogEntries.
func (l *ActivityLog) Append(entry LogEntry) error {
	path := l.Path()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted config dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	_ = truncateLogIfNeeded(path)
	return nil
}

// ReadLog returns up to the last n entries, oldest first. n <= 0 returns all.
// Lines that do not decode are skipped.
func (l *ActivityLog) ReadLog(n int) ([]LogEntry, error) {
	f, err := os.Open(l.Path()) //nolint:gosec // trusted path
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e LogEntry
		if json.Unmarshal(scanner.Bytes(), &e) == nil {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log file: %w", err)
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

func truncateLogIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxLogEntries {
		return nil
	}
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}
