package termination

import (
	"sort"
	"time"

	"github.com/lif0/pkg/utils/errx"
	"go.uber.org/zap"
)

// priorityGroup is a transient grouping of tasks sharing one priority value,
// recomputed at each shutdown attempt. Registration order is preserved within
// the group; it only matters for diagnostics, never for execution order.
type priorityGroup struct {
	priority int
	tasks    []Task
}

// groupByPriority partitions tasks into priority groups, descending by
// priority value.
func groupByPriority(tasks []Task) []priorityGroup {
	index := make(map[int]int, len(tasks))
	var groups []priorityGroup

	for _, t := range tasks {
		i, ok := index[t.Priority]
		if !ok {
			i = len(groups)
			index[t.Priority] = i
			groups = append(groups, priorityGroup{priority: t.Priority})
		}
		groups[i].tasks = append(groups[i].tasks, t)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].priority > groups[j].priority
	})
	return groups
}

type pipeline struct {
	log *zap.Logger
}

// run executes groups strictly sequentially, tasks within a group
// concurrently through the timeout guard. A group starts only after the
// previous one has fully settled.
//
// If any group fails, the remaining lower-priority groups are never invoked
// and the group's first failure is returned. A failed cleanup step is assumed
// to leave the process in an uncertain state, so continuing is unsafe.
//
// The returned MultiError carries every task failure observed before the halt,
// in registration order within each group.
func (p pipeline) run(tasks []Task, grace time.Duration) (errx.MultiError, error) {
	diags := errx.MultiError{}

	for _, g := range groupByPriority(tasks) {
		p.log.Debug("stopping priority group",
			zap.Int("priority", g.priority),
			zap.Int("tasks", len(g.tasks)),
		)

		results, first := p.runGroup(g, grace)
		for _, err := range results {
			if err != nil {
				diags.Append(err)
			}
		}
		if first != nil {
			p.log.Error("priority group failed, halting pipeline",
				zap.Int("priority", g.priority),
				zap.Error(first),
			)
			return diags, first
		}
	}

	return diags, nil
}

// runGroup starts every task in the group without waiting for each other and
// joins their completions. results is indexed by registration order; first is
// the chronologically first failure, or nil if every task succeeded.
func (p pipeline) runGroup(g priorityGroup, grace time.Duration) (results []error, first error) {
	type outcome struct {
		idx int
		err error
	}

	settled := make(chan outcome, len(g.tasks))
	for i, t := range g.tasks {
		go func(idx int, t Task) {
			settled <- outcome{idx: idx, err: runWithTimeout(t, grace)}
		}(i, t)
	}

	results = make([]error, len(g.tasks))
	for range g.tasks {
		o := <-settled
		results[o.idx] = o.err
		if o.err != nil && first == nil {
			first = o.err
		}
	}
	return results, first
}
