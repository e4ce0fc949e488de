package codegen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/zibox/internal/ast"
	"github.com/yourusername/zibox/internal/ir"
	"github.com/yourusername/zibox/internal/util"
)

var (
	vizBlockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	vizTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	vizBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	vizMissStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Visualize renders a terminal timeline of the scheduled program. Bar
// length is proportional to duration, one cell per quarter hour, so an
// eight-hour day stays within a normal terminal width.
func Visualize(p *ir.Program) string {
	var b strings.Builder
	for _, block := range p.Blocks {
		b.WriteString(vizBlockStyle.Render("@" + block.Name))
		b.WriteString("\n")
		for _, t := range p.TasksIn(block) {
			if !t.Scheduled() {
				fmt.Fprintf(&b, "  %s  %s\n",
					vizMissStyle.Render("   --- unplaced   "),
					t.DisplayName())
				continue
			}
			fmt.Fprintf(&b, "  %s  %s %s (%s)\n",
				vizTimeStyle.Render(timeSpan(t)),
				vizBarStyle.Render(strings.Repeat("█", util.QuarterHours(t.DurationMinutes()))),
				t.DisplayName(),
				ast.FormatMinutes(t.DurationMinutes()))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
