package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/config"
	"github.com/twiced-technology-gmbh/deepsea/internal/schedule"
	"github.com/twiced-technology-gmbh/deepsea/internal/tui"
	"github.com/twiced-technology-gmbh/deepsea/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	adapter, closeStore, err := cfg.OpenStore()
	if err != nil {
		return clierr.Wrap(clierr.StoreUnavailable, err)
	}
	defer func() { _ = closeStore() }()

	b, warnings, err := board.Open(adapter, board.WithRecorder(board.NewActivityLog(cfg.Dir())))
	if err != nil {
		return clierr.Wrap(clierr.StoreUnavailable, err)
	}
	if err := activate(b); err != nil {
		return err
	}

	notes := make([]string, 0, len(warnings))
	for _, w := range warnings {
		notes = append(notes, fmt.Sprintf("%s: %v", w.Source, w.Err))
	}
	model := tui.NewBoard(b, tui.Options{
		Name:          cfg.Name,
		DefaultLevel:  cfg.Defaults.Level,
		DefaultRepeat: cfg.Defaults.Repeat,
		Warnings:      notes,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Watch() {
		go startTUIWatcher(ctx, cfg, p)
	}

	// Re-activate when the day rolls over so flags and recurring dates
	// stay current in a long-running session.
	rollover := schedule.NewRollover(nil)
	if _, err := rollover.ScheduleDaily(cfg.Rollover(), func() {
		p.Send(tui.ActivateMsg{})
	}); err != nil {
		return clierr.Newf(clierr.InvalidInput, "tui.rollover: %v", err)
	}
	rollover.Start()
	defer rollover.Stop()

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, cfg *config.Config, p *tea.Program) {
	w, err := watcher.New([]string{cfg.WatchPath()}, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(watchErr error) {
		p.Send(tui.ErrMsg{Err: watchErr})
	})
}
