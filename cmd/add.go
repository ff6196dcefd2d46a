package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/output"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add TEXT",
	Aliases: []string{"create", "new"},
	Short:   "Add a task",
	Long: `Adds a task and re-activates the list: recurring tasks advance, flags are
recomputed and the list is re-sorted by due date. Blank text is ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("level", "l", "", "task level (light, middle, deep)")
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringP("repeat", "r", "", "repeat rule (none, daily, weekly, monthly)")
	addCmd.Flags().SetNormalizeFunc(taskFlagAliases)
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	level, _ := cmd.Flags().GetString("level")
	due, _ := cmd.Flags().GetString("due")
	repeat, _ := cmd.Flags().GetString("repeat")
	if level == "" {
		level = cfg.Defaults.Level
	}
	if repeat == "" {
		repeat = cfg.Defaults.Repeat
	}

	b, done, err := openBoard(cfg)
	if err != nil {
		return err
	}
	defer done()

	added, err := b.Add(text, level, due, repeat)
	if err != nil {
		return err
	}
	if !added {
		return nil
	}
	// The new task is last in stored order; capture it before sorting.
	created := b.Snapshot()[b.Len()-1].Task

	if err := activate(b); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.Result{Action: "add", Task: created, Count: b.Len()})
	}
	output.Messagef(os.Stdout, "Added %q (%s)", created.Text, describe(created))
	return nil
}

// describe summarizes the non-text fields of t.
func describe(t task.Task) string {
	parts := []string{string(t.Level)}
	if t.Date != "" {
		parts = append(parts, "due "+t.Date)
	}
	if t.Repeat != task.RepeatNone {
		parts = append(parts, "every "+string(t.Repeat))
	}
	return strings.Join(parts, ", ")
}
