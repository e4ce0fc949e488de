package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	formatsHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	formatNameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported output formats with examples",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, formatsHeaderStyle.Render("Supported output formats"))

		for _, f := range []struct {
			name, ext, desc string
		}{
			{"markdown", "md", "A markdown document with your tasks formatted as a checklist."},
			{"json", "json", "A JSON representation of your plan for integration with other tools."},
			{"shell", "sh", "A shell script that steps through your tasks when executed."},
			{"calendar", "ics", "An iCalendar file that can be imported into calendar applications."},
		} {
			fmt.Fprintf(out, "\n%s\n", formatNameStyle.Render(fmt.Sprintf("%s (.%s)", f.name, f.ext)))
			fmt.Fprintf(out, "  %s\n", f.desc)
			fmt.Fprintf(out, "  Example: zibox plan.zbx -f %s -o plan.%s\n", f.name, f.ext)
		}
	},
}
