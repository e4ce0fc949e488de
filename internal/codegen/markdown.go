package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/zibox/internal/ast"
	"github.com/yourusername/zibox/internal/ir"
)

// generateMarkdown renders the program as a checklist document, one section
// per block.
func generateMarkdown(p *ir.Program) string {
	var b strings.Builder
	b.WriteString("# Plan\n")
	fmt.Fprintf(&b, "\nWorkday %s-%s, %s total.\n",
		p.Metadata.WorkdayStart, p.Metadata.WorkdayEnd,
		ast.FormatMinutes(p.TotalDuration()))

	for _, block := range p.Blocks {
		fmt.Fprintf(&b, "\n## %s\n\n", block.Name)
		for _, t := range p.TasksIn(block) {
			box := " "
			if t.Completed {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s — %s", box, t.DisplayName(), timeSpan(t))
			if t.Duration != nil {
				fmt.Fprintf(&b, " (%s)", t.Duration)
			}
			if len(t.Tags) > 0 {
				fmt.Fprintf(&b, " %s", hashTags(t))
			}
			if t.Priority != ast.PriorityMedium {
				fmt.Fprintf(&b, " !%s", t.Priority)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// hashTags renders a task's tags as "#a #b", alphabetically.
func hashTags(t *ir.Task) string {
	tags := make([]string, 0, len(t.Tags))
	for tag := range t.Tags {
		tags = append(tags, "#"+tag)
	}
	sort.Strings(tags)
	return strings.Join(tags, " ")
}
