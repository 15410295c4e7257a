package termination

import "context"

// Default is the process-wide manager used by the package-level helpers.
var Default = New()

// SetGlobal replaces the Default manager. Configure a custom one with New
// before any triggers are bound (or in tests).
func SetGlobal(m *Manager) {
	Default = m
}

// Add registers a task on the Default manager.
func Add(t Task) error { return Default.Add(t) }

// Exit requests shutdown on the Default manager.
func Exit(opts ...ExitOption) error { return Default.Exit(opts...) }

// Crash requests immediate termination on the Default manager.
func Crash() error { return Default.Crash() }

// Wait blocks until the Default manager's pipeline has settled.
func Wait() { Default.Wait() }

// SetTrigger binds termination triggers on the Default manager.
func SetTrigger(ctx context.Context, opts ...TriggerOption) {
	Default.SetTrigger(ctx, opts...)
}
