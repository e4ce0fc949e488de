// Package optimizer reorders tasks inside each block of a lowered program.
// Passes are cumulative and keyed by the optimization level: level 1 sorts
// by priority, level 2 adds dependency resolution, level 3 and above add
// tag grouping. The optimizer never fails: cycles and dangling dependency
// references degrade the ordering guarantees, not the run.
package optimizer

import (
	"sort"

	"github.com/yourusername/zibox/internal/ir"
)

// Optimize applies the pass set selected by level, in place. It is a pure
// function of the block contents, the level, and the focus tags; it always
// terminates and always leaves the program with the same task id set it was
// given.
func Optimize(p *ir.Program, level int) {
	if level <= 0 {
		return
	}
	sortByPriority(p)
	if level >= 2 {
		resolveDependencies(p)
	}
	if level >= 3 {
		groupByTags(p)
	}
}

// sortByPriority stable-sorts each block by priority descending, breaking
// ties with duration ascending so short tasks surface first.
func sortByPriority(p *ir.Program) {
	for bi := range p.Blocks {
		block := &p.Blocks[bi]
		sort.SliceStable(block.TaskIDs, func(i, j int) bool {
			a, _ := p.Task(block.TaskIDs[i])
			b, _ := p.Task(block.TaskIDs[j])
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			return a.DurationMinutes() < b.DurationMinutes()
		})
	}
}

// Depth-first traversal colors. A back-edge into an in-progress node marks
// a cycle; the edge is ignored rather than reported.
const (
	colorUnvisited = iota
	colorInProgress
	colorVisited
)

// resolveDependencies reorders each block so that, where the dependency
// graph is acyclic, every task follows the tasks it depends on. The
// traversal is an explicit-stack depth-first postorder over an index-based
// graph; cyclic chains come out in an order consistent with some of their
// edges. Dependencies pointing outside the block are ignored.
func resolveDependencies(p *ir.Program) {
	for bi := range p.Blocks {
		block := &p.Blocks[bi]
		n := len(block.TaskIDs)
		if n < 2 {
			continue
		}

		index := make(map[string]int, n)
		for i, id := range block.TaskIDs {
			index[id] = i
		}
		edges := make([][]int, n)
		for i, id := range block.TaskIDs {
			task, _ := p.Task(id)
			for _, dep := range task.DependsOn {
				if j, ok := index[dep]; ok {
					edges[i] = append(edges[i], j)
				}
			}
		}

		order := postorder(n, edges)
		reordered := make([]string, 0, n)
		for _, i := range order {
			reordered = append(reordered, block.TaskIDs[i])
		}
		block.TaskIDs = reordered
	}
}

// postorder visits every node exactly once and emits each node after its
// reachable dependencies. Back-edges (targets still in progress) are
// skipped, which makes the traversal total on cyclic graphs.
func postorder(n int, edges [][]int) []int {
	type frame struct {
		node int
		next int
	}

	color := make([]int, n)
	order := make([]int, 0, n)
	var stack []frame

	for seed := 0; seed < n; seed++ {
		if color[seed] != colorUnvisited {
			continue
		}
		color[seed] = colorInProgress
		stack = append(stack, frame{node: seed})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(edges[top.node]) {
				dep := edges[top.node][top.next]
				top.next++
				if color[dep] == colorUnvisited {
					color[dep] = colorInProgress
					stack = append(stack, frame{node: dep})
				}
				continue
			}
			color[top.node] = colorVisited
			order = append(order, top.node)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// groupByTags rewrites each block as runs of tagged tasks. The grouping
// tags are the program's focus tags when configured, otherwise every tag in
// the block in first-seen order (a task's own tags are taken
// alphabetically, so the scan is deterministic). Each run is stable-sorted
// by priority descending; tasks carrying none of the tags keep their
// relative order at the end. A task appears once, under the first tag that
// claimed it.
func groupByTags(p *ir.Program) {
	for bi := range p.Blocks {
		block := &p.Blocks[bi]

		tags := p.Metadata.FocusTags
		if len(tags) == 0 {
			tags = blockTags(p, *block)
		}

		placed := make(map[string]bool, len(block.TaskIDs))
		grouped := make([]string, 0, len(block.TaskIDs))

		for _, tag := range tags {
			var run []string
			for _, id := range block.TaskIDs {
				task, _ := p.Task(id)
				if !placed[id] && task.HasTag(tag) {
					run = append(run, id)
				}
			}
			sort.SliceStable(run, func(i, j int) bool {
				a, _ := p.Task(run[i])
				b, _ := p.Task(run[j])
				return a.Priority > b.Priority
			})
			for _, id := range run {
				placed[id] = true
				grouped = append(grouped, id)
			}
		}

		for _, id := range block.TaskIDs {
			if !placed[id] {
				placed[id] = true
				grouped = append(grouped, id)
			}
		}
		block.TaskIDs = grouped
	}
}

// blockTags collects the union of tags in one block, ordered by first
// appearance in a forward scan.
func blockTags(p *ir.Program, block ir.Block) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, id := range block.TaskIDs {
		task, _ := p.Task(id)
		for _, tag := range sortedTags(task) {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func sortedTags(t *ir.Task) []string {
	tags := make([]string, 0, len(t.Tags))
	for tag := range t.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
