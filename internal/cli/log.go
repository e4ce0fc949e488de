package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/zibox/internal/logbook"
)

var flagLogLines int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the most recent logbook entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(logbook.DefaultPath); err != nil {
			return fmt.Errorf("no logbook at %s; compile a plan first", logbook.DefaultPath)
		}
		book, err := logbook.New(logbook.DefaultPath)
		if err != nil {
			return err
		}
		for _, line := range book.Tail(flagLogLines) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntVarP(&flagLogLines, "lines", "n", 20, "Number of entries to show")
}
