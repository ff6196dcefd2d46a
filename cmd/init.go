package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/config"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a deepsea directory",
	Long: `Creates a .deepsea directory with config.yml. Tasks are stored as JSON in
.deepsea/data by default, or in a SQLite database with --backend sqlite.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "list name (defaults to current directory name)")
	initCmd.Flags().String("backend", config.DefaultBackend, "store backend (file, sqlite)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.BoardAlreadyExists, "deepsea already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}
	backend, _ := cmd.Flags().GetString("backend")

	cfg, err := config.Init(absDir, name, backend)
	if err != nil {
		return err
	}

	// Create the store up front so a bad backend fails here, not on first add.
	_, closeStore, err := cfg.OpenStore()
	if err != nil {
		return clierr.Wrap(clierr.StoreUnavailable, err)
	}
	_ = closeStore()

	location := cfg.StorePath()
	if cfg.Store.Backend == config.BackendSQLite {
		location = cfg.DSN()
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":  "initialized",
			"dir":     absDir,
			"name":    name,
			"config":  cfg.ConfigPath(),
			"backend": cfg.Store.Backend,
			"store":   location,
		})
	}

	output.Messagef(os.Stdout, "Initialized %q in %s", name, absDir)
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Store:   %s (%s)", location, cfg.Store.Backend)
	output.Messagef(os.Stdout, "  Hint:    Add a task with: deepsea add \"Buy supplies\" --due 2025-06-20")
	return nil
}
