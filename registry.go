package termination

import "sync"

// registry is the thread-safe store of registered shutdown tasks. Insertion
// order is preserved; it is the tie-break order for diagnostics within a
// priority group.
type registry struct {
	mu    sync.Mutex
	tasks []Task
}

// add validates t and appends it. Registration stays open for the whole
// process lifetime: tasks added after a shutdown has begun are accepted but
// are not retroactively included in the in-flight run.
func (r *registry) add(t Task) error {
	if err := t.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append(r.tasks, t)
	return nil
}

// snapshot returns a copy of the current contents. The pipeline runs over a
// snapshot so concurrent adds cannot mutate an in-flight run.
func (r *registry) snapshot() []Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]Task, len(r.tasks))
	copy(tasks, r.tasks)
	return tasks
}
