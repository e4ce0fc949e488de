package codegen

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/zibox/internal/ast"
	"github.com/yourusername/zibox/internal/ir"
)

// sampleProgram builds a two-block program with one scheduled, one
// unscheduled, and one untimed task.
func sampleProgram(t *testing.T) *ir.Program {
	t.Helper()

	write := ast.NewTask("write")
	write.Params = []string{"report", "q3"}
	write.Duration = &ast.Duration{Minutes: 90}
	write.Priority = ast.PriorityHigh
	write.Tags["deepwork"] = struct{}{}
	write.Tags["writing"] = struct{}{}

	email := ast.NewTask("email")
	email.Duration = &ast.Duration{Minutes: 600}

	stretch := ast.NewTask("stretch")

	p := ir.Lower([]ast.Block{
		{Name: "morning", Tasks: []ast.Task{write, email}},
		{Name: "evening", Tasks: []ast.Task{stretch}},
	}, ir.DefaultMetadata())

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(90 * time.Minute)
	tk, _ := p.Task("task_0")
	tk.ScheduledStart, tk.ScheduledEnd = &start, &end
	return p
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"JSON", FormatJSON},
		{"shell", FormatShell},
		{"sh", FormatShell},
		{"calendar", FormatCalendar},
		{"ics", FormatCalendar},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(\"pdf\"): expected error")
	}
}

func TestFormatExtension(t *testing.T) {
	pairs := map[Format]string{
		FormatMarkdown: "md",
		FormatJSON:     "json",
		FormatShell:    "sh",
		FormatCalendar: "ics",
	}
	for f, want := range pairs {
		if got := f.Extension(); got != want {
			t.Errorf("%v.Extension() = %q, want %q", f, got, want)
		}
	}
}

func TestGenerateMarkdown(t *testing.T) {
	out, err := Generate(sampleProgram(t), FormatMarkdown)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"# Plan",
		"## morning",
		"## evening",
		"- [ ] write(report, q3) — 09:00-10:30 (1h 30m) #deepwork #writing !high",
		"- [ ] email — unscheduled (10h)",
		"- [ ] stretch — unscheduled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q\n%s", want, out)
		}
	}
}

func TestGenerateJSON(t *testing.T) {
	out, err := Generate(sampleProgram(t), FormatJSON)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var doc struct {
		Metadata struct {
			WorkdayStart string `json:"workdayStart"`
			DeepworkTag  string `json:"deepworkTag"`
		} `json:"metadata"`
		Blocks []struct {
			Name  string `json:"name"`
			Tasks []struct {
				ID              string   `json:"id"`
				Name            string   `json:"name"`
				DurationMinutes *int     `json:"durationMinutes"`
				Tags            []string `json:"tags"`
				Priority        string   `json:"priority"`
				ScheduledStart  *string  `json:"scheduledStart"`
			} `json:"tasks"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	if doc.Metadata.WorkdayStart != "09:00" {
		t.Errorf("workdayStart = %q, want 09:00", doc.Metadata.WorkdayStart)
	}
	if len(doc.Blocks) != 2 || doc.Blocks[0].Name != "morning" {
		t.Fatalf("blocks = %+v", doc.Blocks)
	}

	write := doc.Blocks[0].Tasks[0]
	if write.ID != "task_0" || write.Priority != "high" {
		t.Errorf("write task = %+v", write)
	}
	if write.DurationMinutes == nil || *write.DurationMinutes != 90 {
		t.Errorf("write durationMinutes = %v, want 90", write.DurationMinutes)
	}
	if len(write.Tags) != 2 || write.Tags[0] != "deepwork" || write.Tags[1] != "writing" {
		t.Errorf("write tags = %v, want sorted [deepwork writing]", write.Tags)
	}
	if write.ScheduledStart == nil {
		t.Error("write scheduledStart missing")
	}

	stretch := doc.Blocks[1].Tasks[0]
	if stretch.DurationMinutes != nil {
		t.Errorf("untimed task durationMinutes = %v, want absent", *stretch.DurationMinutes)
	}
	if stretch.ScheduledStart != nil {
		t.Errorf("unscheduled task scheduledStart = %v, want absent", *stretch.ScheduledStart)
	}
}

func TestGenerateShell(t *testing.T) {
	out, err := Generate(sampleProgram(t), FormatShell)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(out, "#!/bin/sh\n") {
		t.Error("missing shebang")
	}
	for _, want := range []string{
		"set -eu",
		"# --- morning ---",
		"echo '09:00-10:30  write(report, q3) (1h 30m)'",
		"# unscheduled: email",
		"# unscheduled: stretch",
		"echo 'plan complete'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output missing %q\n%s", want, out)
		}
	}
}

func TestGenerateCalendar(t *testing.T) {
	out, err := Generate(sampleProgram(t), FormatCalendar)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Error("calendar must end with END:VCALENDAR and CRLF")
	}
	if strings.Count(out, "BEGIN:VEVENT") != 1 {
		t.Errorf("want exactly 1 event, got %d", strings.Count(out, "BEGIN:VEVENT"))
	}
	for _, want := range []string{
		"UID:task_0@zibox\r\n",
		"DTSTART:20260310T090000\r\n",
		"DTEND:20260310T103000\r\n",
		"SUMMARY:write(report\\, q3)\r\n",
		"CATEGORIES:deepwork,writing\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "email") || strings.Contains(out, "stretch") {
		t.Error("unscheduled tasks must not produce events")
	}
}

func TestVisualize(t *testing.T) {
	out := Visualize(sampleProgram(t))
	for _, want := range []string{
		"@morning",
		"@evening",
		"write(report, q3)",
		"09:00-10:30",
		"unplaced",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("timeline missing %q\n%s", want, out)
		}
	}
}

func TestEscapeICS(t *testing.T) {
	if got := escapeICS(`a,b;c\d`); got != `a\,b\;c\\d` {
		t.Errorf("escapeICS = %q", got)
	}
}
