package termination

import (
	"fmt"
	"time"
)

// minStopWindow is the smallest guard window any task gets, so that a zero or
// very short grace period still leaves a usable working window.
const minStopWindow = 100 * time.Millisecond

// stopWindow computes the guard duration for a grace period:
// max(100ms, grace*1.1). The 10% margin lets a task that spends its whole
// grace budget settle on its own instead of racing the guard timer.
func stopWindow(grace time.Duration) time.Duration {
	w := grace + grace/10
	if w < minStopWindow {
		return minStopWindow
	}
	return w
}

// runWithTimeout races a task's stop operation against its guard window.
// The first outcome wins: the task's own result (a recovered panic counts as
// a failure), or a *StopTimeoutError once the window elapses. The loser is
// abandoned, never cancelled; a late completion has no observable effect.
//
// The goroutine and its buffered channel are leaked on timeout until the stop
// operation returns, which keeps the guard from ever blocking natural exit.
func runWithTimeout(t Task, grace time.Duration) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("shutdown task %q panicked: %v", t.Name, r)
			}
		}()
		done <- t.Stop(grace)
	}()

	timer := time.NewTimer(stopWindow(grace))
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return &StopTimeoutError{Task: t, Grace: grace}
	}
}
