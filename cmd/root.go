// Package cmd implements the deepsea CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/config"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "deepsea",
	Short: "A personal task list that keeps itself sorted by due date",
	Long: `deepsea tracks tasks with a level, a due date and an optional repeat rule.
Expired tasks are flagged, recurring tasks move forward once their date has passed,
and the list stays sorted by due date. Run deepsea without arguments to open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the deepsea directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	cliErr := clierr.From(err)
	if outputFormat() == output.FormatJSON {
		output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cliErr.ExitCode())
}

// loadConfig loads the config from --dir, or else the nearest .deepsea
// directory, or else the per-user directory (created on first use).
func loadConfig() (*config.Config, error) {
	if flagDir != "" {
		cfg, err := config.Load(flagDir)
		if errors.Is(err, config.ErrNotFound) {
			return nil, clierr.Newf(clierr.BoardNotFound, "no deepsea directory at %s (run 'deepsea init')", flagDir).
				WithDetails(map[string]any{"dir": flagDir})
		}
		return cfg, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Resolve(cwd)
}

// openBoard opens the configured store and loads the board over it. The
// board is in stored order: the order the last activation printed, or the
// last reorder. The returned func releases the store.
func openBoard(cfg *config.Config) (*board.Board, func(), error) {
	adapter, closeStore, err := cfg.OpenStore()
	if err != nil {
		return nil, nil, clierr.Wrap(clierr.StoreUnavailable, err)
	}
	b, warnings, err := board.Open(adapter, board.WithRecorder(board.NewActivityLog(cfg.Dir())))
	if err != nil {
		_ = closeStore()
		return nil, nil, clierr.Wrap(clierr.StoreUnavailable, err)
	}
	printWarnings(warnings)
	return b, func() { _ = closeStore() }, nil
}

// activate runs activation and saves the sorted result, so the positions
// printed afterwards are the ones the next command reads back.
func activate(b *board.Board) error {
	if _, err := b.Activate(); err != nil {
		return err
	}
	return b.Save()
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarnings writes store read warnings to stderr.
func printWarnings(warnings []task.ReadWarning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", w.Source, w.Err)
	}
}

// parsePosition converts a 1-based CLI position into a 0-based board
// position. Range checks are left to the board.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return 0, clierr.Newf(clierr.InvalidPosition, "invalid position %q: must be a number", arg).
			WithDetails(map[string]any{"input": arg})
	}
	return n - 1, nil
}

// taskFlagAliases maps alternate flag spellings onto the canonical names.
func taskFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "priority", "weight":
		name = "level"
	case "date", "due-date":
		name = "due"
	case "recur", "every":
		name = "repeat"
	}
	return pflag.NormalizedName(name)
}

// viewAt returns the view at pos, or a TASK_NOT_FOUND error.
func viewAt(b *board.Board, pos int) (task.View, error) {
	views := b.Snapshot()
	if err := task.ValidatePosition(pos, len(views)); err != nil {
		return task.View{}, err
	}
	return views[pos], nil
}
