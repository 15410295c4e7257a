package termination

import "time"

// StopFunc performs a task's cleanup work. It receives the grace period the
// task was given and returns nil on success. The function may block; the
// manager bounds it with a timeout derived from the grace period.
type StopFunc func(grace time.Duration) error

// Task is a named, prioritized shutdown action. Tasks are immutable once
// registered: the manager copies them by value and never mutates them.
//
// Higher priorities stop earlier. Tasks sharing a priority stop concurrently.
type Task struct {
	// Name identifies the task in errors and logs. Must be non-empty.
	Name string

	// Priority orders execution, descending. Must be non-negative.
	// The zero value puts the task in the last group.
	Priority int

	// Stop is the cleanup operation. Must be non-nil.
	Stop StopFunc
}

// validate checks the registration constraints. The returned error is always
// a *InvalidTaskError naming the offending field.
func (t Task) validate() error {
	if t.Name == "" {
		return &InvalidTaskError{Field: "name", Reason: "must be non-empty"}
	}
	if t.Priority < 0 {
		return &InvalidTaskError{Field: "priority", Reason: "must be non-negative"}
	}
	if t.Stop == nil {
		return &InvalidTaskError{Field: "stop", Reason: "must be non-nil"}
	}
	return nil
}
