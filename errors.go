package termination

import (
	"fmt"
	"time"
)

// InvalidTaskError is returned by Add when a task violates a registration
// constraint. It is fatal to that Add call only; prior registrations are
// unaffected. Use errors.As(err, &target) to inspect the offending field.
type InvalidTaskError struct {
	// Field is the task field that failed validation: "name", "priority"
	// or "stop".
	Field string

	// Reason describes the violated constraint.
	Reason string
}

func (e *InvalidTaskError) Error() string {
	return fmt.Sprintf("invalid shutdown task: %s %s", e.Field, e.Reason)
}

// StopTimeoutError is produced when a task's stop operation does not settle
// within its guard window of max(100ms, grace*1.1). It carries the offending
// task and the grace period it was given; the underlying stop operation is
// abandoned, not cancelled.
type StopTimeoutError struct {
	Task  Task
	Grace time.Duration
}

func (e *StopTimeoutError) Error() string {
	return fmt.Sprintf("shutdown task %q did not stop within %s (grace %s)",
		e.Task.Name, stopWindow(e.Grace), e.Grace)
}
