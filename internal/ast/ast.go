// Package ast defines the syntax tree the parser produces from .zbx source.
// It is deliberately dumb: no derived state, no scheduling metadata. The ir
// package lowers these types into the form the optimizer and scheduler work
// on.
package ast

// Task is a single parsed task line.
type Task struct {
	Name      string
	Params    []string
	Duration  *Duration
	Tags      map[string]struct{}
	Priority  Priority
	DependsOn []string
}

// NewTask returns a task with the parser's defaults applied: no duration,
// no tags, medium priority.
func NewTask(name string) Task {
	return Task{
		Name:     name,
		Tags:     map[string]struct{}{},
		Priority: PriorityMedium,
	}
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	_, ok := t.Tags[tag]
	return ok
}

// Block is a named, ordered group of tasks (a @section in the source file).
type Block struct {
	Name  string
	Tasks []Task
}
