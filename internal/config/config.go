package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750

	rolloverLayout = "15:04"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no deepsea directory found (run 'deepsea init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the deepsea configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Name     string         `yaml:"name"`
	Store    StoreConfig    `yaml:"store"`
	Defaults DefaultsConfig `yaml:"defaults"`
	TUI      TUIConfig      `yaml:"tui,omitempty"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// StoreConfig selects and configures the store backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"` // file backend directory
	DSN     string `yaml:"dsn,omitempty"`  // sqlite database
	Key     string `yaml:"key"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Level  string `yaml:"level"`
	Repeat string `yaml:"repeat"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	Rollover string `yaml:"rollover,omitempty"` // HH:MM local time of the daily re-activation
	Watch    *bool  `yaml:"watch,omitempty"`    // reload when the store changes on disk
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// StorePath returns the absolute path of the file backend directory.
func (c *Config) StorePath() string {
	return c.resolve(c.Store.Path)
}

// DSN returns the sqlite DSN with relative file paths resolved against the
// data directory.
func (c *Config) DSN() string {
	dsn := c.Store.DSN
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return dsn
	}
	return c.resolve(dsn)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Rollover returns the configured day-rollover time as "HH:MM".
func (c *Config) Rollover() string {
	if c.TUI.Rollover == "" {
		return DefaultRollover
	}
	return c.TUI.Rollover
}

// Watch reports whether the TUI should reload on store changes. Defaults to true.
func (c *Config) Watch() bool {
	if c.TUI.Watch == nil {
		return true
	}
	return *c.TUI.Watch
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	if name == "" {
		name = DefaultName
	}
	return &Config{
		Version: CurrentVersion,
		Name:    name,
		Store: StoreConfig{
			Backend: DefaultBackend,
			Path:    DefaultStorePath,
			DSN:     DefaultDSN,
			Key:     DefaultKey,
		},
		Defaults: DefaultsConfig{
			Level:  DefaultLevel,
			Repeat: DefaultRepeat,
		},
		TUI: TUIConfig{
			Rollover: DefaultRollover,
			Watch:    boolPtr(true),
		},
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if !task.Level(c.Defaults.Level).Valid() {
		return fmt.Errorf("%w: default level %q is not one of light, middle, deep", ErrInvalid, c.Defaults.Level)
	}
	if !task.Repeat(c.Defaults.Repeat).Valid() {
		return fmt.Errorf("%w: default repeat %q is not one of none, daily, weekly, monthly", ErrInvalid, c.Defaults.Repeat)
	}
	if _, err := time.Parse(rolloverLayout, c.Rollover()); err != nil {
		return fmt.Errorf("%w: tui.rollover %q must be HH:MM", ErrInvalid, c.TUI.Rollover)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required for the file backend", ErrInvalid)
		}
	case BackendSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for the sqlite backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: store.backend %q must be one of %s",
			ErrInvalid, c.Store.Backend, strings.Join(Backends(), ", "))
	}
	if c.Store.Key == "" || strings.ContainsAny(c.Store.Key, `/\`) {
		return fmt.Errorf("%w: store.key %q must be a non-empty name without path separators", ErrInvalid, c.Store.Key)
	}
	return nil
}

// Init creates a new data directory with default settings and the given
// backend (empty selects the default).
func Init(dir, name, backend string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)
	if backend != "" {
		if !slices.Contains(Backends(), backend) {
			return nil, clierr.Newf(clierr.InvalidInput, "invalid backend %q; allowed: %s",
				backend, strings.Join(Backends(), ", "))
		}
		cfg.Store.Backend = backend
	}

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given data directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(absDir, ConfigFileName)) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDir walks upward from startDir looking for a data directory
// containing config.yml. Returns the absolute path to the data directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound,
				"no deepsea directory found (run 'deepsea init' to create one)")
		}
		dir = parent
	}
}

// UserDir returns the per-user fallback data directory (~/.config/deepsea).
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, DefaultName), nil
}

// Resolve finds the config for startDir: the nearest .deepsea directory
// upward, or else the per-user directory, which is created on first use.
func Resolve(startDir string) (*Config, error) {
	dir, err := FindDir(startDir)
	if err == nil {
		return Load(dir)
	}
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.BoardNotFound {
		return nil, err
	}

	userDir, err := UserDir()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(userDir)
	if errors.Is(err, ErrNotFound) {
		return Init(userDir, DefaultName, "")
	}
	return cfg, err
}
