package termination

import (
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultGrace is the per-task grace period used by Exit when the
	// manager and the call do not specify one.
	DefaultGrace = 5 * time.Second

	// DefaultDrainGrace is the drain watchdog interval: how long the
	// process may attempt a natural exit before forced termination.
	DefaultDrainGrace = 5 * time.Second
)

// config holds the recognized constructor options. Every hook has a no-op
// default so call sites never nil-check.
type config struct {
	grace      time.Duration
	drainGrace time.Duration

	onDrainTimeout func()
	onSigint       func()
	onSigterm      func()
	onStopError    func(error)
	onPanic        func(any)

	logger *zap.Logger
	proc   Process
}

// Option configures a Manager.
type Option func(*config)

// WithGrace sets the default per-task grace period used by Exit when the call
// does not carry its own.
//
// Example:
//
//	WithGrace(10 * time.Second)
func WithGrace(grace time.Duration) Option {
	return func(c *config) {
		c.grace = grace
	}
}

// WithDrainGrace sets the drain watchdog interval. The watchdog is armed at
// every Exit call and forces termination if the process is still alive after
// this interval.
func WithDrainGrace(drainGrace time.Duration) Option {
	return func(c *config) {
		c.drainGrace = drainGrace
	}
}

// WithOnDrainTimeout sets the hook invoked when the drain watchdog fires,
// just before forced termination.
func WithOnDrainTimeout(f func()) Option {
	return func(c *config) {
		c.onDrainTimeout = f
	}
}

// WithOnSigint sets the hook invoked before the graceful Exit triggered by
// SIGINT.
func WithOnSigint(f func()) Option {
	return func(c *config) {
		c.onSigint = f
	}
}

// WithOnSigterm sets the hook invoked before the graceful Exit triggered by
// SIGTERM.
func WithOnSigterm(f func()) Option {
	return func(c *config) {
		c.onSigterm = f
	}
}

// WithOnStopError sets the hook invoked with the pipeline's first failure,
// if any. It is called exactly once per process lifetime.
func WithOnStopError(f func(error)) Option {
	return func(c *config) {
		c.onStopError = f
	}
}

// WithOnPanic sets the hook invoked by Recover with the recovered value,
// before Crash is attempted.
func WithOnPanic(f func(any)) Option {
	return func(c *config) {
		c.onPanic = f
	}
}

// WithLogger sets the structured logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithProcess replaces the process-termination primitive. Intended for tests;
// the default calls os.Exit.
func WithProcess(proc Process) Option {
	return func(c *config) {
		c.proc = proc
	}
}

// newConfig builds the effective configuration.
func newConfig(opts ...Option) config {
	c := config{
		grace:          DefaultGrace,
		drainGrace:     DefaultDrainGrace,
		onDrainTimeout: func() {},
		onSigint:       func() {},
		onSigterm:      func() {},
		onStopError:    func(error) {},
		onPanic:        func(any) {},
		logger:         zap.NewNop(),
		proc:           osProcess{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// exitParams are the per-call overrides of a single Exit request.
type exitParams struct {
	code  int
	grace time.Duration
}

// ExitOption overrides a single Exit call.
type ExitOption func(*exitParams)

// WithExitCode proposes an exit code for this call. The first non-zero code
// recorded for the process wins; a later zero never resets it.
func WithExitCode(code int) ExitOption {
	return func(p *exitParams) {
		p.code = code
	}
}

// WithExitGrace overrides the per-task grace period for this call.
func WithExitGrace(grace time.Duration) ExitOption {
	return func(p *exitParams) {
		p.grace = grace
	}
}
