// Package logbook is the run log of a zibox session: timestamped, leveled,
// stage-tagged lines appended to a single plain-text file so a compile and
// its execution can be reconstructed after the terminal is gone. Subsystems
// write through stage-scoped views, and every write path is nil-safe, which
// lets the scheduler and runtime log unconditionally.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultPath is where the CLI keeps the logbook, relative to the working
// directory.
const DefaultPath = "zibox.log"

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Stage identifies the pipeline stage an entry came from.
type Stage string

const (
	StageCompile  Stage = "compile"
	StageSchedule Stage = "schedule"
	StageRun      Stage = "run"
)

// Logbook owns the backing file. Entries are written through stage views;
// the logbook itself only knows how to append and read back lines.
type Logbook struct {
	path string
	mu   sync.Mutex
}

// New creates a logbook backed by the provided path, creating parent
// directories as needed.
func New(path string) (*Logbook, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logbook: ensure dir: %w", err)
		}
	}
	return &Logbook{path: path}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Stage returns a view whose entries carry the given stage tag. Safe on a
// nil logbook; the view then swallows writes.
func (l *Logbook) Stage(s Stage) *View {
	return &View{book: l, stage: s}
}

// Tail returns up to maxLines of the most recent entries.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// View writes entries for one pipeline stage.
type View struct {
	book  *Logbook
	stage Stage
}

// Info appends an informational entry.
func (v *View) Info(format string, args ...any) {
	v.append(LevelInfo, format, args...)
}

// Warn appends a warning entry.
func (v *View) Warn(format string, args ...any) {
	v.append(LevelWarn, format, args...)
}

// Error appends an error entry.
func (v *View) Error(format string, args ...any) {
	v.append(LevelError, format, args...)
}

// Overflow records the scheduler's canonical entry for a task that did not
// fit its window.
func (v *View) Overflow(task string, minutes int, deadline string) {
	v.append(LevelWarn, "cannot fit %s (%dm) before %s, leaving unscheduled",
		task, minutes, deadline)
}

func (v *View) append(level Level, format string, args ...any) {
	if v == nil || v.book == nil {
		return
	}
	v.book.mu.Lock()
	defer v.book.mu.Unlock()
	line := fmt.Sprintf("[%s] %-5s %-8s %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		string(level),
		string(v.stage),
		strings.TrimSpace(fmt.Sprintf(format, args...)),
	)
	file, err := os.OpenFile(v.book.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}
