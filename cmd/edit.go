package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/board"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
)

var editCmd = &cobra.Command{
	Use:   "edit POS",
	Short: "Edit a task",
	Long: `Modifies fields of the task at POS. Only the flags given are changed.
The list is not re-sorted until the next activation.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringP("text", "t", "", "new task text")
	editCmd.Flags().StringP("level", "l", "", "new level (light, middle, deep)")
	editCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().Bool("clear-due", false, "remove the due date")
	editCmd.Flags().StringP("repeat", "r", "", "new repeat rule (none, daily, weekly, monthly)")
	editCmd.Flags().SetNormalizeFunc(taskFlagAliases)
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	var p board.Patch
	for name, field := range map[string]**string{
		"text":   &p.Text,
		"level":  &p.Level,
		"due":    &p.Date,
		"repeat": &p.Repeat,
	} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*field = &v
		}
	}
	if clearDue, _ := cmd.Flags().GetBool("clear-due"); clearDue {
		empty := ""
		p.Date = &empty
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

	updated, err := b.Edit(pos, p)
	if err != nil {
		return err
	}
	v, _ := viewAt(b, pos)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.Result{Action: "edit", Task: v, Count: b.Len()})
	}
	state := ""
	switch {
	case v.Expired:
		state = " [expired]"
	case v.Today:
		state = " [today]"
	}
	output.Messagef(os.Stdout, "Updated #%d: %s (%s)%s", pos+1, updated.Text, describe(updated), state)
	return nil
}
