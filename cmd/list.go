package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
	"github.com/twiced-technology-gmbh/deepsea/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Activates the list (advancing recurring tasks whose date has passed) and prints
it sorted by due date. Positions shown are the ones other commands accept.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "filter by text (case-insensitive)")
	listCmd.Flags().StringSlice("level", nil, "filter by level (comma-separated)")
	listCmd.Flags().StringSlice("repeat", nil, "filter by repeat rule (comma-separated)")
	listCmd.Flags().Bool("pending", false, "show only pending tasks")
	listCmd.Flags().Bool("completed", false, "show only completed tasks")
	listCmd.Flags().Bool("expired", false, "show only expired tasks")
	listCmd.Flags().Bool("today", false, "show only tasks due today")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().Bool("no-advance", false, "print in stored order without advancing, sorting or saving")
	listCmd.Flags().String("group-by", "", "group results by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	listCmd.MarkFlagsMutuallyExclusive("pending", "completed")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	search, _ := cmd.Flags().GetString("search")
	levels, _ := cmd.Flags().GetStringSlice("level")
	repeats, _ := cmd.Flags().GetStringSlice("repeat")
	pending, _ := cmd.Flags().GetBool("pending")
	completed, _ := cmd.Flags().GetBool("completed")
	expired, _ := cmd.Flags().GetBool("expired")
	today, _ := cmd.Flags().GetBool("today")
	limit, _ := cmd.Flags().GetInt("limit")
	noAdvance, _ := cmd.Flags().GetBool("no-advance")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if groupBy != "" && !slices.Contains(board.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(board.ValidGroupByFields(), ", "))
	}

	filter := board.FilterOptions{
		Search:  search,
		Pending: pending,
		Expired: expired,
		Today:   today,
		Limit:   limit,
	}
	if completed {
		v := true
		filter.Completed = &v
	}
	for _, s := range levels {
		l, err := task.ParseLevel(s)
		if err != nil {
			return err
		}
		filter.Levels = append(filter.Levels, l)
	}
	for _, s := range repeats {
		r, err := task.ParseRepeat(s)
		if err != nil {
			return err
		}
		filter.Repeats = append(filter.Repeats, r)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, done, err := openBoard(cfg)
	if err != nil {
		return err
	}
	defer done()

	// --no-advance prints stored order untouched: the order the other
	// commands address, including any manual moves since the last activation.
	if !noAdvance {
		if err := activate(b); err != nil {
			return err
		}
	}

	views := board.Filter(b.Snapshot(), filter)
	if groupBy != "" {
		return outputGroupedList(board.GroupBy(views, groupBy))
	}
	return outputTaskList(views)
}

func outputGroupedList(groups []board.Group) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, groups)
	case output.FormatCompact:
		output.GroupedCompact(os.Stdout, groups)
	default:
		output.GroupedTable(os.Stdout, groups)
	}
	return nil
}

func outputTaskList(views []task.View) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, views)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, views)
	default:
		output.TaskTable(os.Stdout, views)
	}
	return nil
}
