package codegen

import (
	"fmt"
	"strings"

	"github.com/yourusername/zibox/internal/ir"
)

const icsStampLayout = "20060102T150405"

// generateCalendar renders scheduled tasks as iCalendar events with
// floating local times. Unscheduled tasks produce no event.
func generateCalendar(p *ir.Program) string {
	var b strings.Builder
	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//zibox//plan compiler//EN")

	for _, t := range p.AllTasks() {
		if !t.Scheduled() {
			continue
		}
		writeICSLine(&b, "BEGIN:VEVENT")
		writeICSLine(&b, fmt.Sprintf("UID:%s@zibox", t.ID))
		writeICSLine(&b, "DTSTART:"+t.ScheduledStart.Format(icsStampLayout))
		writeICSLine(&b, "DTEND:"+t.ScheduledEnd.Format(icsStampLayout))
		writeICSLine(&b, "SUMMARY:"+escapeICS(t.DisplayName()))
		if len(t.Tags) > 0 {
			tags := sortedTagList(t)
			for i, tag := range tags {
				tags[i] = escapeICS(tag)
			}
			writeICSLine(&b, "CATEGORIES:"+strings.Join(tags, ","))
		}
		writeICSLine(&b, "DESCRIPTION:"+escapeICS(fmt.Sprintf("block %s, priority %s", t.Block, t.Priority)))
		writeICSLine(&b, "END:VEVENT")
	}

	writeICSLine(&b, "END:VCALENDAR")
	return b.String()
}

// writeICSLine terminates lines with CRLF as RFC 5545 requires.
func writeICSLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeICS(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}
