// Package ir is the intermediate representation the compile pipeline works
// on. A Program owns a single arena of tasks addressed by id; blocks store
// only ordered id sequences. Every stage (optimizer, scheduler, codegen,
// runtime) reads and mutates tasks through the arena, so there is exactly
// one copy of each task and nothing to resynchronize between stages.
package ir

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/zibox/internal/ast"
)

// Task is a unit of work carried through the pipeline. Ids are assigned at
// lowering time, sequentially, and are stable for the run. ScheduledStart
// and ScheduledEnd are either both set or both nil; both nil means the
// scheduler could not place the task in its window.
type Task struct {
	ID        string
	Name      string
	Params    []string
	Duration  *ast.Duration
	Block     string
	Tags      map[string]struct{}
	Priority  ast.Priority
	DependsOn []string

	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	Completed      bool
}

// DurationMinutes treats an absent duration as zero. An untimed task is a
// valid state, never an error.
func (t *Task) DurationMinutes() int {
	return t.Duration.DurationMinutes()
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	_, ok := t.Tags[tag]
	return ok
}

// Scheduled reports whether the task was placed in a window.
func (t *Task) Scheduled() bool {
	return t.ScheduledStart != nil && t.ScheduledEnd != nil
}

// DisplayName renders the task as written in the source, e.g.
// "write(report, q3)".
func (t *Task) DisplayName() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(t.Params, ", "))
}

// Block is a named, ordered id sequence. The order is meaningful: it is the
// traversal order the optimizer and the naive scheduler operate on.
type Block struct {
	Name    string
	TaskIDs []string
}

// Program is one compiled plan: ordered blocks, scheduling metadata, and
// the task arena. A Program is built once per compile, owned exclusively by
// the pipeline, and never persisted or merged.
type Program struct {
	Blocks   []Block
	Metadata Metadata

	tasks map[string]*Task
}

// Lower builds a Program from the parsed AST. Ids are assigned here,
// monotonically ("task_0", "task_1", ...), with no reuse; this is the only
// place ids are created. after: references are resolved within the same
// block — by task name first, falling back to a literal id match — into id
// edges; references that resolve to nothing are dropped.
func Lower(astBlocks []ast.Block, md Metadata) *Program {
	p := &Program{
		Metadata: md,
		tasks:    make(map[string]*Task),
	}

	counter := 0
	for _, b := range astBlocks {
		block := Block{Name: b.Name}
		nameToID := make(map[string]string, len(b.Tasks))
		ids := make(map[string]bool, len(b.Tasks))
		raw := make([][]string, 0, len(b.Tasks))

		for _, t := range b.Tasks {
			id := fmt.Sprintf("task_%d", counter)
			counter++
			tags := make(map[string]struct{}, len(t.Tags))
			for tag := range t.Tags {
				tags[tag] = struct{}{}
			}
			p.tasks[id] = &Task{
				ID:       id,
				Name:     t.Name,
				Params:   append([]string(nil), t.Params...),
				Duration: t.Duration,
				Block:    b.Name,
				Tags:     tags,
				Priority: t.Priority,
			}
			block.TaskIDs = append(block.TaskIDs, id)
			ids[id] = true
			if _, taken := nameToID[t.Name]; !taken {
				nameToID[t.Name] = id
			}
			raw = append(raw, t.DependsOn)
		}

		for i, id := range block.TaskIDs {
			task := p.tasks[id]
			for _, ref := range raw[i] {
				ref = strings.TrimSpace(ref)
				if dep, ok := nameToID[ref]; ok {
					task.DependsOn = append(task.DependsOn, dep)
				} else if ids[ref] {
					task.DependsOn = append(task.DependsOn, ref)
				}
			}
		}

		p.Blocks = append(p.Blocks, block)
	}
	return p
}

// Task looks up a task by id in the arena.
func (p *Program) Task(id string) (*Task, bool) {
	t, ok := p.tasks[id]
	return t, ok
}

// TasksIn returns the tasks of one block in block order.
func (p *Program) TasksIn(b Block) []*Task {
	out := make([]*Task, 0, len(b.TaskIDs))
	for _, id := range b.TaskIDs {
		if t, ok := p.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// AllTasks returns every task in block traversal order.
func (p *Program) AllTasks() []*Task {
	var out []*Task
	for _, b := range p.Blocks {
		out = append(out, p.TasksIn(b)...)
	}
	return out
}

// FilterByTag returns the tasks carrying the given tag, in block order.
func (p *Program) FilterByTag(tag string) []*Task {
	var out []*Task
	for _, t := range p.AllTasks() {
		if t.HasTag(tag) {
			out = append(out, t)
		}
	}
	return out
}

// TotalDuration sums every task's duration in minutes.
func (p *Program) TotalDuration() int {
	total := 0
	for _, t := range p.AllTasks() {
		total += t.DurationMinutes()
	}
	return total
}

// TaskCount returns the number of tasks in the arena.
func (p *Program) TaskCount() int {
	return len(p.tasks)
}
