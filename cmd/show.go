package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deepsea/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show POS",
	Short: "Show task details",
	Long:  `Displays every field of the task at POS, including its derived due-date state.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
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

	v, err := viewAt(b, pos)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, v)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, v)
	default:
		output.TaskDetail(os.Stdout, v)
	}
	return nil
}
