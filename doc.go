// Package termination coordinates orderly shutdown of a long-running process.
// Callers register named cleanup tasks tagged with a priority; on a termination
// trigger, tasks run in descending-priority order, tasks sharing a priority run
// concurrently, and each task is bounded by a timeout derived from its grace
// period. The process's final exit code reflects success or failure of the
// sequence, and an independent drain watchdog guarantees the process
// terminates even if tasks hang.
package termination
