package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/output"
)

var moveCmd = &cobra.Command{
	Use:   "move POS NEWPOS",
	Short: "Move a task to another position",
	Long: `Moves the task at POS so that it ends up at NEWPOS. The manual order lasts
until the next activation re-sorts the list by due date.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // position and target
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(_ *cobra.Command, args []string) error {
	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
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

	if err := b.Reorder(from, to); err != nil {
		return err
	}
	v, _ := viewAt(b, to)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "moved",
			"from":   from + 1,
			"to":     to + 1,
			"text":   v.Text,
		})
	}
	output.Messagef(os.Stdout, "Moved %q from #%d to #%d", v.Text, from+1, to+1)
	return nil
}
