// Package codegen renders a scheduled program into its output formats. The
// renderers are pure translation: by the time a program reaches them, every
// task either carries a consistent start/end pair or is unscheduled, and
// codegen only formats what it sees.
package codegen

import (
	"fmt"
	"strings"

	"github.com/yourusername/zibox/internal/ir"
)

// Format enumerates the supported output formats.
type Format int

const (
	FormatMarkdown Format = iota
	FormatJSON
	FormatShell
	FormatCalendar
)

// ParseFormat resolves an output format name. Unknown names are a
// configuration error.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "shell", "sh":
		return FormatShell, nil
	case "calendar", "ics":
		return FormatCalendar, nil
	}
	return FormatMarkdown, fmt.Errorf("unknown output format %q", s)
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatShell:
		return "shell"
	case FormatCalendar:
		return "calendar"
	default:
		return "markdown"
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatShell:
		return "sh"
	case FormatCalendar:
		return "ics"
	default:
		return "md"
	}
}

// Generate renders the program in the requested format.
func Generate(p *ir.Program, f Format) (string, error) {
	switch f {
	case FormatJSON:
		return generateJSON(p)
	case FormatShell:
		return generateShell(p), nil
	case FormatCalendar:
		return generateCalendar(p), nil
	default:
		return generateMarkdown(p), nil
	}
}

const clockLayout = "15:04"

// timeSpan renders "09:00-09:30" for a scheduled task, "unscheduled"
// otherwise.
func timeSpan(t *ir.Task) string {
	if !t.Scheduled() {
		return "unscheduled"
	}
	return t.ScheduledStart.Format(clockLayout) + "-" + t.ScheduledEnd.Format(clockLayout)
}
