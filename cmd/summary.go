package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/config"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
	"github.com/twiced-technology-gmbh/deepsea/internal/watcher"
)

var flagWatch bool

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"board", "stats"},
	Short:   "Show a summary of the list",
	Long: `Displays task counts: pending and completed, expired and due today, and the
distribution over levels and repeat rules.

Use --watch to keep the display live-updating. The summary re-renders whenever
the store changes on disk (e.g., from another terminal). Press Ctrl+C to stop.`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the summary on store changes")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, done, err := openBoard(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := activate(b); err != nil {
		return err
	}
	if err := renderSummary(b, cfg.Name); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}
	return watchSummary(cfg, b)
}

func renderSummary(b *board.Board, name string) error {
	o := b.Summary(name)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, o)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, o)
	default:
		output.OverviewTable(os.Stdout, o)
	}
	return nil
}

// watchSummary re-renders on every store change. It reloads rather than
// activates: activation saves, which would wake the watcher again.
func watchSummary(cfg *config.Config, b *board.Board) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New([]string{cfg.WatchPath()}, func() {
		clearScreen()
		warnings, loadErr := b.Reload()
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading tasks: %v\n", loadErr)
			return
		}
		printWarnings(warnings)
		if renderErr := renderSummary(b, cfg.Name); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering summary: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})
	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
