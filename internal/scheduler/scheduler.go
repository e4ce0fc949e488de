// Package scheduler assigns concrete start and end timestamps to the tasks
// of an optimized program, packing them into the configured workday window
// on the current local date. Three strategies share one allocation
// primitive; a task that does not fit is left unscheduled and reported as a
// warning, never as an error.
package scheduler

import (
	"sort"
	"time"

	"github.com/yourusername/zibox/internal/ir"
	"github.com/yourusername/zibox/internal/logbook"
)

// DefaultDeepworkTag routes tasks into the protected window when no tag is
// configured.
const DefaultDeepworkTag = "deepwork"

// Scheduler runs one strategy over a program. The zero value is not useful;
// construct with New.
type Scheduler struct {
	mode        Mode
	deepworkTag string
	log         *logbook.View
	now         func() time.Time
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithDeepworkTag sets the tag the deepwork-first strategy routes on. An
// empty tag keeps the default.
func WithDeepworkTag(tag string) Option {
	return func(s *Scheduler) {
		if tag != "" {
			s.deepworkTag = tag
		}
	}
}

// WithLogbook directs overflow warnings to the given logbook, under the
// schedule stage.
func WithLogbook(log *logbook.Logbook) Option {
	return func(s *Scheduler) { s.log = log.Stage(logbook.StageSchedule) }
}

// WithClock overrides the wall clock. Tests use this to pin the schedule
// date.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a scheduler for the given mode.
func New(mode Mode, opts ...Option) *Scheduler {
	s := &Scheduler{
		mode:        mode,
		deepworkTag: DefaultDeepworkTag,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule assigns timestamps in place. It is total: every task comes out
// either with both timestamps set, consistent with its duration, or with
// neither.
func (s *Scheduler) Schedule(p *ir.Program) {
	switch s.mode {
	case ModeEarlyBird:
		s.earlyBird(p)
	case ModeDeepworkFirst:
		s.deepworkFirst(p)
	default:
		s.naive(p)
	}
}

// cursor is the placement clock one packing pass advances. Once a task
// misses, the cursor latches stuck and every later task in the same pass
// misses too; a miss never advances the clock, and there is no best-fit or
// retry behavior.
type cursor struct {
	at    time.Time
	end   time.Time
	stuck bool
}

// place applies the shared allocation primitive: the task fits when
// cursor + duration stays within the window end, in which case it gets
// start = cursor, end = start + duration, and the cursor advances to end.
func (s *Scheduler) place(c *cursor, t *ir.Task) {
	d := time.Duration(t.DurationMinutes()) * time.Minute
	if c.stuck || c.at.Add(d).After(c.end) {
		c.stuck = true
		t.ScheduledStart, t.ScheduledEnd = nil, nil
		s.log.Overflow(t.DisplayName(), t.DurationMinutes(), c.end.Format("15:04"))
		return
	}
	start := c.at
	end := start.Add(d)
	t.ScheduledStart = &start
	t.ScheduledEnd = &end
	c.at = end
}

// naive packs tasks in existing block and task order with a single cursor
// from the start of the workday.
func (s *Scheduler) naive(p *ir.Program) {
	start, end := p.Metadata.WindowOn(s.now())
	c := cursor{at: start, end: end}
	for _, b := range p.Blocks {
		for _, t := range p.TasksIn(b) {
			s.place(&c, t)
		}
	}
}

// earlyBird flattens every block into one sequence, stable-sorts it by
// priority alone, and packs from the start of the workday. Tasks are
// arena-backed, so the per-block view updates with them.
func (s *Scheduler) earlyBird(p *ir.Program) {
	start, end := p.Metadata.WindowOn(s.now())
	tasks := p.AllTasks()
	sortByPriority(tasks)

	c := cursor{at: start, end: end}
	for _, t := range tasks {
		s.place(&c, t)
	}
}

// deepworkFirst reserves the middle half of the workday for tasks carrying
// the deepwork tag. Tagged tasks pack into the reserved window; everything
// else packs around it, with the outer cursor jumping past the reservation
// whenever it lands inside.
func (s *Scheduler) deepworkFirst(p *ir.Program) {
	start, end := p.Metadata.WindowOn(s.now())
	total := int(end.Sub(start).Minutes())
	deepStart := start.Add(time.Duration(total/4) * time.Minute)
	deepEnd := start.Add(time.Duration(3*total/4) * time.Minute)

	var deep, other []*ir.Task
	for _, t := range p.AllTasks() {
		if t.HasTag(s.deepworkTag) {
			deep = append(deep, t)
		} else {
			other = append(other, t)
		}
	}
	sortByPriority(deep)
	sortByPriority(other)

	c := cursor{at: deepStart, end: deepEnd}
	for _, t := range deep {
		s.place(&c, t)
	}

	outer := cursor{at: start, end: end}
	for _, t := range other {
		if !outer.at.Before(deepStart) && outer.at.Before(deepEnd) {
			outer.at = deepEnd
		}
		s.place(&outer, t)
	}
}

// sortByPriority orders highest priority first, preserving input order
// among equals. Strategies deliberately skip the optimizer's duration
// tie-break.
func sortByPriority(tasks []*ir.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority > tasks[j].Priority
	})
}
