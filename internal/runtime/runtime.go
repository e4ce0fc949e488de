// Package runtime is the interactive "run the plan" stepper. It walks the
// scheduled tasks in start order as a bubbletea program: each task waits
// for confirmation, then runs (or simulates, under dry-run) with a progress
// bar. Execution progress is appended to the logbook so the session
// survives the terminal.
package runtime

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/zibox/internal/ast"
	"github.com/yourusername/zibox/internal/ir"
	"github.com/yourusername/zibox/internal/logbook"
)

// Run steps through the scheduled tasks of a compiled program. Unscheduled
// tasks are not part of the run. Returns once the user finishes or quits.
func Run(p *ir.Program, dryRun bool, log *logbook.Logbook) error {
	m := newModel(p, dryRun, log.Stage(logbook.StageRun))
	if len(m.tasks) == 0 {
		fmt.Println("Nothing to run: no task was scheduled.")
		return nil
	}
	m.log.Info("starting execution: %d blocks, %d scheduled tasks", len(p.Blocks), len(m.tasks))
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run plan: %w", err)
	}
	return nil
}

type phase int

const (
	phaseConfirm phase = iota
	phaseWorking
	phaseDone
	phaseAborted
)

type tickMsg time.Time

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	taskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	abortStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	detailsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

type model struct {
	program *ir.Program
	tasks   []*ir.Task
	log     *logbook.View
	dryRun  bool

	index    int
	phase    phase
	started  time.Time
	workFor  time.Duration
	progress progress.Model
	skipped  int
}

func newModel(p *ir.Program, dryRun bool, log *logbook.View) model {
	var tasks []*ir.Task
	for _, t := range p.AllTasks() {
		if t.Scheduled() {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ScheduledStart.Before(*tasks[j].ScheduledStart)
	})
	return model{
		program:  p,
		tasks:    tasks,
		log:      log,
		dryRun:   dryRun,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 8
		if w > 10 {
			m.progress.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.phase != phaseWorking {
			return m, nil
		}
		if time.Since(m.started) >= m.workFor {
			return m.finishCurrent()
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseConfirm:
		switch msg.String() {
		case "q", "ctrl+c":
			m.phase = phaseAborted
			m.log.Info("execution aborted by user")
			return m, tea.Quit
		case "s":
			t := m.current()
			m.log.Info("skipped task: %s", t.DisplayName())
			m.skipped++
			return m.advance()
		case "enter":
			t := m.current()
			m.log.Info("starting task: %s (%s)", t.DisplayName(), ast.FormatMinutes(t.DurationMinutes()))
			m.phase = phaseWorking
			m.started = time.Now()
			m.workFor = workDuration(t, m.dryRun)
			if m.workFor == 0 {
				return m.finishCurrent()
			}
			return m, tick()
		}
	case phaseWorking:
		if msg.String() == "ctrl+c" {
			m.phase = phaseAborted
			m.log.Info("execution aborted by user")
			return m, tea.Quit
		}
	case phaseDone, phaseAborted:
		return m, tea.Quit
	}
	return m, nil
}

// workDuration compresses dry runs to a one-second simulation; real runs
// hold the full task duration, matching the scheduled slot.
func workDuration(t *ir.Task, dryRun bool) time.Duration {
	if dryRun {
		return time.Second
	}
	return time.Duration(t.DurationMinutes()) * time.Minute
}

func (m model) finishCurrent() (tea.Model, tea.Cmd) {
	t := m.current()
	t.Completed = true
	m.log.Info("completed task: %s", t.DisplayName())
	return m.advance()
}

func (m model) advance() (tea.Model, tea.Cmd) {
	m.index++
	if m.index >= len(m.tasks) {
		m.phase = phaseDone
		m.log.Info("execution completed: %d done, %d skipped", m.completedCount(), m.skipped)
		return m, tea.Quit
	}
	m.phase = phaseConfirm
	return m, nil
}

func (m model) current() *ir.Task {
	return m.tasks[m.index]
}

func (m model) completedCount() int {
	n := 0
	for _, t := range m.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) View() string {
	switch m.phase {
	case phaseDone:
		return titleStyle.Render("All tasks completed!") +
			fmt.Sprintf(" %d done, %d skipped.\n", m.completedCount(), m.skipped)
	case phaseAborted:
		return abortStyle.Render("Execution aborted.") + "\n"
	}

	t := m.current()
	header := titleStyle.Render("zibox run") +
		detailsStyle.Render(fmt.Sprintf("  task %d/%d", m.index+1, len(m.tasks)))
	line := fmt.Sprintf("%s  %s-%s (%s)",
		taskStyle.Render(t.DisplayName()),
		t.ScheduledStart.Format("15:04"), t.ScheduledEnd.Format("15:04"),
		ast.FormatMinutes(t.DurationMinutes()))

	switch m.phase {
	case phaseConfirm:
		hint := hintStyle.Render("[enter] start   [s] skip   [q] quit")
		if m.dryRun {
			hint += skipStyle.Render("   (dry run)")
		}
		return fmt.Sprintf("%s\n\n%s\n\n%s\n", header, line, hint)
	default:
		frac := float64(time.Since(m.started)) / float64(m.workFor)
		if frac > 1 {
			frac = 1
		}
		return fmt.Sprintf("%s\n\n%s\n\n%s\n", header, line, m.progress.ViewAs(frac))
	}
}
