package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/deepsea/internal/clierr"
	"github.com/twiced-technology-gmbh/deepsea/internal/output"
)

var deleteCmd = &cobra.Command{
	Use:     "delete POS",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Removes the task at POS. Prompts for confirmation in interactive mode.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	// Require confirmation in TTY mode unless --yes.
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task #%d %q? [y/N] ", pos+1, v.Text)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	removed, err := b.Delete(pos)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.Result{Action: "delete", Task: removed, Count: b.Len()})
	}
	output.Messagef(os.Stdout, "Deleted #%d: %s", pos+1, removed.Text)
	return nil
}
