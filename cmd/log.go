package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"history"},
	Short:   "Show recent activity",
	Long:    `Prints the most recent mutations recorded in the activity log, oldest first.`,
	Args:    cobra.NoArgs,
	RunE:    runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)") //nolint:mnd // default page size
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := board.NewActivityLog(cfg.Dir()).ReadLog(limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []board.LogEntry{}
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.ActivityCompact(os.Stdout, entries)
	default:
		output.ActivityTable(os.Stdout, entries)
	}
	return nil
}
