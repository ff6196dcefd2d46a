// Package config handles deepsea configuration.
package config

const (
	// DefaultDir is the default data directory name.
	DefaultDir = ".deepsea"
	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// DefaultName is the collection name used when none is given.
	DefaultName = "deepsea"

	// DefaultBackend is the default store backend.
	DefaultBackend = BackendFile
	// DefaultStorePath is the file backend directory, relative to the data directory.
	DefaultStorePath = "data"
	// DefaultDSN is the sqlite database file, relative to the data directory.
	DefaultDSN = "deepsea.db"
	// DefaultKey is the key the collection is stored under.
	DefaultKey = "deepsea_todos"

	// DefaultLevel is the level for new tasks.
	DefaultLevel = "light"
	// DefaultRepeat is the recurrence rule for new tasks.
	DefaultRepeat = "none"

	// DefaultRollover is the local time at which the TUI re-activates.
	DefaultRollover = "00:00"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends returns the supported store backends.
func Backends() []string {
	return []string{BackendFile, BackendSQLite}
}

func boolPtr(v bool) *bool { return &v }
