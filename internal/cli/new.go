package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/zibox/internal/util"
)

const newFileTemplate = `@morning
  review(inbox) [30m] #admin p:high
  write(report) [2h] #deepwork p:critical

@afternoon
  meeting(team) [1h] #collaboration
  code(feature) [3h] #deepwork p:high after:meeting

@evening
  exercise(run) [45m] #health
  read(book) [30m] #learning
`

var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create a new .zbx file from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := util.SanitizeOutputName(args[0], "zbx")
		if _, err := os.Stat(filename); err == nil {
			return fmt.Errorf("file already exists: %s", filename)
		}
		if err := os.WriteFile(filename, []byte(newFileTemplate), 0o644); err != nil {
			return fmt.Errorf("create file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created new .zbx file: %s\n", filename)
		return nil
	},
}
