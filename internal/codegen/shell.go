package codegen

import (
	"fmt"
	"strings"

	"github.com/yourusername/zibox/internal/ast"
	"github.com/yourusername/zibox/internal/ir"
)

// generateShell renders the plan as a POSIX shell script that announces
// each task at its slot. Unscheduled tasks are listed as comments so the
// script still documents the full plan.
func generateShell(p *ir.Program) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Generated by zibox. Run to step through the day's plan.\n")
	b.WriteString("set -eu\n")

	for _, block := range p.Blocks {
		fmt.Fprintf(&b, "\n# --- %s ---\n", block.Name)
		for _, t := range p.TasksIn(block) {
			if !t.Scheduled() {
				fmt.Fprintf(&b, "# unscheduled: %s\n", t.DisplayName())
				continue
			}
			fmt.Fprintf(&b, "echo %s\n",
				shellQuote(fmt.Sprintf("%s  %s (%s)", timeSpan(t), t.DisplayName(),
					ast.FormatMinutes(t.DurationMinutes()))))
			fmt.Fprintf(&b, "read -r _ # press enter when done\n")
		}
	}

	b.WriteString("\necho 'plan complete'\n")
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
