package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/output"
)

var doneCmd = &cobra.Command{
	Use:     "done POS",
	Aliases: []string{"toggle", "check"},
	Short:   "Toggle a task's completed state",
	Long: `Marks the task at POS completed, or pending again if it already is.
Completing a recurring task does not advance its date.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, closeStore, err := openBoard(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	completed, err := b.Toggle(pos)
	if err != nil {
		return err
	}
	v, _ := viewAt(b, pos)

	action := "reopen"
	if completed {
		action = "complete"
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.Result{Action: action, Task: v, Count: b.Len()})
	}

	if completed {
		output.Messagef(os.Stdout, "Completed #%d: %s", pos+1, v.Text)
	} else {
		output.Messagef(os.Stdout, "Reopened #%d: %s", pos+1, v.Text)
	}
	return nil
}
