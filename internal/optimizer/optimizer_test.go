package optimizer

import (
	"testing"

	"github.com/yourusername/zibox/internal/ast"
	"github.com/yourusername/zibox/internal/ir"
)

func task(name string, priority ast.Priority, minutes int, opts ...func(*ast.Task)) ast.Task {
	t := ast.NewTask(name)
	t.Priority = priority
	if minutes >= 0 {
		t.Duration = &ast.Duration{Minutes: minutes}
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withTags(tags ...string) func(*ast.Task) {
	return func(t *ast.Task) {
		for _, tag := range tags {
			t.Tags[tag] = struct{}{}
		}
	}
}

func withDeps(deps ...string) func(*ast.Task) {
	return func(t *ast.Task) { t.DependsOn = deps }
}

func lower(md ir.Metadata, blocks ...ast.Block) *ir.Program {
	return ir.Lower(blocks, md)
}

func blockNames(t *testing.T, p *ir.Program, blockIdx int) []string {
	t.Helper()
	var names []string
	for _, tk := range p.TasksIn(p.Blocks[blockIdx]) {
		names = append(names, tk.Name)
	}
	return names
}

func assertOrder(t *testing.T, p *ir.Program, blockIdx int, want ...string) {
	t.Helper()
	got := blockNames(t, p, blockIdx)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestLevelZeroIsIdentity(t *testing.T) {
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("c", ast.PriorityLow, 5),
		task("a", ast.PriorityHigh, 30),
		task("b", ast.PriorityCritical, 10),
	}})
	Optimize(p, 0)
	assertOrder(t, p, 0, "c", "a", "b")
}

func TestLevelOnePrioritySortWithDurationTieBreak(t *testing.T) {
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("a", ast.PriorityHigh, 30),
		task("b", ast.PriorityHigh, 10),
		task("c", ast.PriorityLow, 5),
	}})
	Optimize(p, 1)
	assertOrder(t, p, 0, "b", "a", "c")
}

func TestLevelOneStableAmongEqualTasks(t *testing.T) {
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("first", ast.PriorityMedium, 20),
		task("second", ast.PriorityMedium, 20),
		task("third", ast.PriorityMedium, 20),
	}})
	Optimize(p, 1)
	assertOrder(t, p, 0, "first", "second", "third")
}

func TestLevelOneUntimedSortsBeforeTimed(t *testing.T) {
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("timed", ast.PriorityHigh, 30),
		task("untimed", ast.PriorityHigh, -1),
	}})
	Optimize(p, 1)
	// Absent duration counts as zero minutes.
	assertOrder(t, p, 0, "untimed", "timed")
}

func TestLevelTwoTopologicalOrder(t *testing.T) {
	// All same priority and duration so level 1 does not disturb input
	// order; deploy depends on build depends on setup.
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("deploy", ast.PriorityMedium, 10, withDeps("build")),
		task("build", ast.PriorityMedium, 10, withDeps("setup")),
		task("setup", ast.PriorityMedium, 10),
	}})
	Optimize(p, 2)

	got := blockNames(t, p, 0)
	pos := map[string]int{}
	for i, name := range got {
		pos[name] = i
	}
	if !(pos["setup"] < pos["build"] && pos["build"] < pos["deploy"]) {
		t.Fatalf("order = %v, want setup before build before deploy", got)
	}
}

func TestLevelTwoCycleTerminatesAndPreservesTasks(t *testing.T) {
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("a", ast.PriorityMedium, 10, withDeps("b")),
		task("b", ast.PriorityMedium, 10, withDeps("c")),
		task("c", ast.PriorityMedium, 10, withDeps("a")),
		task("loner", ast.PriorityMedium, 10),
	}})
	Optimize(p, 2)

	got := blockNames(t, p, 0)
	if len(got) != 4 {
		t.Fatalf("cycle dropped or duplicated tasks: %v", got)
	}
	seen := map[string]bool{}
	for _, name := range got {
		if seen[name] {
			t.Fatalf("duplicate task %q in %v", name, got)
		}
		seen[name] = true
	}
	for _, name := range []string{"a", "b", "c", "loner"} {
		if !seen[name] {
			t.Fatalf("task %q missing from %v", name, got)
		}
	}
}

func TestLevelTwoSelfDependencyIsHarmless(t *testing.T) {
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("a", ast.PriorityMedium, 10, withDeps("a")),
		task("b", ast.PriorityMedium, 10),
	}})
	Optimize(p, 2)
	if got := blockNames(t, p, 0); len(got) != 2 {
		t.Fatalf("self-dependency dropped tasks: %v", got)
	}
}

func TestLevelThreeGroupsByFocusTags(t *testing.T) {
	md := ir.DefaultMetadata()
	md.FocusTags = []string{"deep", "admin"}
	p := lower(md, ast.Block{Name: "b", Tasks: []ast.Task{
		task("mail", ast.PriorityMedium, 10, withTags("admin")),
		task("code", ast.PriorityMedium, 10, withTags("deep")),
		task("walk", ast.PriorityMedium, 10),
		task("design", ast.PriorityCritical, 10, withTags("deep")),
	}})
	Optimize(p, 3)

	// "deep" first (design outranks code), then "admin", then untagged.
	assertOrder(t, p, 0, "design", "code", "mail", "walk")
}

func TestLevelThreeFirstSeenTagOrderWithoutFocusTags(t *testing.T) {
	p := lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
		task("one", ast.PriorityMedium, 10, withTags("zeta")),
		task("two", ast.PriorityMedium, 10, withTags("alpha")),
		task("three", ast.PriorityMedium, 10, withTags("zeta")),
	}})
	Optimize(p, 3)

	// zeta is seen first in the forward scan, so its carriers lead even
	// though alpha sorts earlier alphabetically.
	assertOrder(t, p, 0, "one", "three", "two")
}

func TestLevelThreeDeduplicatesMultiTagTasks(t *testing.T) {
	md := ir.DefaultMetadata()
	md.FocusTags = []string{"x", "y"}
	p := lower(md, ast.Block{Name: "b", Tasks: []ast.Task{
		task("both", ast.PriorityMedium, 10, withTags("x", "y")),
		task("only-y", ast.PriorityMedium, 10, withTags("y")),
	}})
	Optimize(p, 3)
	assertOrder(t, p, 0, "both", "only-y")
}

func TestLevelAboveThreeBehavesLikeThree(t *testing.T) {
	build := func() *ir.Program {
		return lower(ir.DefaultMetadata(), ast.Block{Name: "b", Tasks: []ast.Task{
			task("one", ast.PriorityLow, 10, withTags("t")),
			task("two", ast.PriorityHigh, 10),
		}})
	}
	p3, p9 := build(), build()
	Optimize(p3, 3)
	Optimize(p9, 9)

	want := blockNames(t, p3, 0)
	got := blockNames(t, p9, 0)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("level 9 order %v differs from level 3 order %v", got, want)
		}
	}
}

func TestOptimizePreservesTaskSet(t *testing.T) {
	for level := 0; level <= 4; level++ {
		p := lower(ir.DefaultMetadata(),
			ast.Block{Name: "a", Tasks: []ast.Task{
				task("one", ast.PriorityHigh, 10, withTags("t"), withDeps("two")),
				task("two", ast.PriorityLow, 20),
			}},
			ast.Block{Name: "b", Tasks: []ast.Task{
				task("three", ast.PriorityCritical, 5),
			}})
		before := p.TaskCount()
		Optimize(p, level)
		if got := len(p.AllTasks()); got != before {
			t.Fatalf("level %d: task count %d, want %d", level, got, before)
		}
	}
}
