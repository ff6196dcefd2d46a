package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/config"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"dir": {
			get: func(c *config.Config) any { return c.Dir() },
		},
		"name": {
			get:      func(c *config.Config) any { return c.Name },
			set:      func(c *config.Config, v string) error { c.Name = v; return nil },
			writable: true,
		},
		"store.backend": {
			get: func(c *config.Config) any { return c.Store.Backend },
			set: func(c *config.Config, v string) error {
				if !slices.Contains(config.Backends(), v) {
					return clierr.Newf(clierr.InvalidInput,
						"invalid backend %q; allowed: %s", v, strings.Join(config.Backends(), ", "))
				}
				c.Store.Backend = v
				return nil
			},
			writable: true,
		},
		"store.path": {
			get:      func(c *config.Config) any { return c.Store.Path },
			set:      func(c *config.Config, v string) error { c.Store.Path = v; return nil },
			writable: true,
		},
		"store.dsn": {
			get:      func(c *config.Config) any { return c.Store.DSN },
			set:      func(c *config.Config, v string) error { c.Store.DSN = v; return nil },
			writable: true,
		},
		"store.key": {
			get:      func(c *config.Config) any { return c.Store.Key },
			set:      func(c *config.Config, v string) error { c.Store.Key = v; return nil },
			writable: true,
		},
		"defaults.level": {
			get: func(c *config.Config) any { return c.Defaults.Level },
			set: func(c *config.Config, v string) error {
				l, err := task.ParseLevel(v)
				if err != nil {
					return err
				}
				c.Defaults.Level = string(l)
				return nil
			},
			writable: true,
		},
		"defaults.repeat": {
			get: func(c *config.Config) any { return c.Defaults.Repeat },
			set: func(c *config.Config, v string) error {
				r, err := task.ParseRepeat(v)
				if err != nil {
					return err
				}
				c.Defaults.Repeat = string(r)
				return nil
			},
			writable: true,
		},
		"tui.rollover": {
			get:      func(c *config.Config) any { return c.Rollover() },
			set:      func(c *config.Config, v string) error { c.TUI.Rollover = v; return nil },
			writable: true,
		},
		"tui.watch": {
			get: func(c *config.Config) any { return c.Watch() },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid tui.watch %q: must be true or false", v)
				}
				c.TUI.Watch = &b
				return nil
			},
			writable: true,
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"dir",
		"name",
		"store.backend",
		"store.path",
		"store.dsn",
		"store.key",
		"defaults.level",
		"defaults.repeat",
		"tui.rollover",
		"tui.watch",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-16s %v\n", key, accessors[key].get(cfg))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}
	fmt.Fprintln(os.Stdout, val)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidConfigKey, "config key %q is read-only", key).
			WithDetails(map[string]any{"key": key})
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %v", key, acc.get(cfg))
	return nil
}

func unknownConfigKey(key string) error {
	return clierr.Newf(clierr.InvalidConfigKey, "unknown config key %q; known: %s",
		key, strings.Join(allConfigKeys(), ", ")).
		WithDetails(map[string]any{"key": key})
}
