package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir, "home", "")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.FileExists(t, filepath.Join(dir, ConfigFileName))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "home", loaded.Name)
	assert.Equal(t, DefaultKey, loaded.Store.Key)
	assert.Equal(t, filepath.Join(dir, DefaultStorePath), loaded.StorePath())
	assert.Equal(t, DefaultRollover, loaded.Rollover())
	assert.True(t, loaded.Watch())
}

func TestInit_RejectsUnknownBackend(t *testing.T) {
	_, err := Init(t.TempDir(), "x", "postgres")
	var ce *clierr.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, clierr.InvalidInput, ce.Code)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoad_MigratesV1(t *testing.T) {
	dir := t.TempDir()
	v1 := "version: 1\nname: legacy\ndefaults:\n  level: deep\n  repeat: none\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), fileMode))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, DefaultStorePath, cfg.Store.Path)
	assert.Equal(t, DefaultKey, cfg.Store.Key)
	assert.Equal(t, "deep", cfg.Defaults.Level)

	raw, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "version: 2", "migrated config is persisted")
}

func TestLoad_RejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 99\nname: x\n"), fileMode))

	_, err := Load(dir)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.Name = "" }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"file without path", func(c *Config) { c.Store.Path = "" }},
		{"sqlite without dsn", func(c *Config) { c.Store.Backend = BackendSQLite; c.Store.DSN = "" }},
		{"key with separator", func(c *Config) { c.Store.Key = "a/b" }},
		{"bad level", func(c *Config) { c.Defaults.Level = "abyss" }},
		{"bad repeat", func(c *Config) { c.Defaults.Repeat = "yearly" }},
		{"bad rollover", func(c *Config) { c.TUI.Rollover = "25:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("x")
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalid))
		})
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	data := filepath.Join(root, DefaultDir)
	_, err := Init(data, "x", "")
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, dirMode))

	found, err := FindDir(nested)
	require.NoError(t, err)
	assert.Equal(t, data, found)

	found, err = FindDir(data)
	require.NoError(t, err)
	assert.Equal(t, data, found)
}

func TestResolve_FallsBackToUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	userDir, err := UserDir()
	require.NoError(t, err)

	start := t.TempDir()
	if _, err := FindDir(start); err == nil {
		t.Skip("a .deepsea directory exists above the temp dir")
	}

	cfg, err := Resolve(start)
	require.NoError(t, err)
	assert.Equal(t, userDir, cfg.Dir())
	assert.FileExists(t, filepath.Join(userDir, ConfigFileName))
}

func TestOpenStore(t *testing.T) {
	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			cfg, err := Init(t.TempDir(), "x", backend)
			require.NoError(t, err)

			adapter, closeStore, err := cfg.OpenStore()
			require.NoError(t, err)
			defer closeStore() //nolint:errcheck

			require.NoError(t, adapter.Save([]task.Task{{Text: "a", Level: task.LevelLight, Repeat: task.RepeatNone}}))
			got, _, err := adapter.Load()
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestWatchPath(t *testing.T) {
	cfg := NewDefault("x")
	cfg.SetDir("/tmp/deepsea")
	assert.Equal(t, filepath.Join("/tmp/deepsea", DefaultStorePath), cfg.WatchPath())

	cfg.Store.Backend = BackendSQLite
	assert.Equal(t, "/tmp/deepsea", cfg.WatchPath())

	cfg.Store.DSN = "file:/var/lib/deepsea/todo.db?_busy_timeout=5000"
	assert.Equal(t, "/var/lib/deepsea", cfg.WatchPath())
}
