package termination

import (
	"time"

	"github.com/lif0/pkg/utils/errx"
	"go.uber.org/zap"

	"github.com/CDECatapult/termination-manager/internal"
)

// Manager owns the shutdown sequence of one process: the task registry, the
// idempotent "begin shutdown" decision, exit-code arbitration and the drain
// watchdog. Exactly one pipeline run ever executes per Manager, regardless of
// how many triggers fire.
//
// Use New to create one; the zero value is not usable.
type Manager struct {
	cfg   config
	tasks *registry
	state *internal.ExitState
	log   *zap.Logger
	proc  Process

	done     chan struct{} // closed once the pipeline run has settled
	runErr   error         // first pipeline failure; written before done closes
	stopErrs errx.MultiError
}

// New creates a Manager with the given options.
func New(opts ...Option) *Manager {
	cfg := newConfig(opts...)
	return &Manager{
		cfg:   cfg,
		tasks: &registry{},
		state: internal.NewExitState(),
		log:   cfg.logger,
		proc:  cfg.proc,
		done:  make(chan struct{}),
	}
}

// Add registers a shutdown task. It may be called at any time, including
// after a shutdown has started; late tasks are accepted but not included in
// the in-flight run. Returns a *InvalidTaskError on a constraint violation,
// leaving the registry unmodified.
func (m *Manager) Add(t Task) error {
	return m.tasks.add(t)
}

// MustAdd is Add for fluent chaining. It panics on an invalid task.
//
//	m := termination.New().
//		MustAdd(termination.Task{Name: "http", Priority: 100, Stop: srv.stop}).
//		MustAdd(termination.Task{Name: "db", Priority: 10, Stop: db.stop})
func (m *Manager) MustAdd(t Task) *Manager {
	if err := m.tasks.add(t); err != nil {
		panic(err)
	}
	return m
}

// AddFunc registers stop as a task under the given name and priority.
func (m *Manager) AddFunc(name string, priority int, stop StopFunc) error {
	return m.Add(Task{Name: name, Priority: priority, Stop: stop})
}

// Exit requests process shutdown.
//
// Exit-code arbitration applies on every call: the first non-zero code wins
// and a later zero never resets it. The drain watchdog is armed on every
// call. The pipeline itself runs exactly once, over a snapshot of the
// registry taken by the first call; subsequent calls block until that run has
// settled and return its result.
//
// On pipeline failure the onStopError hook receives the first failure and the
// exit code is forced to 1 if still zero. The returned error is that first
// failure, or nil.
func (m *Manager) Exit(opts ...ExitOption) error {
	p := exitParams{grace: m.cfg.grace}
	for _, opt := range opts {
		opt(&p)
	}

	m.state.RecordCode(p.code)
	m.armWatchdog()

	if m.state.Begin() {
		m.runPipeline(p.grace)
	}

	<-m.done
	return m.runErr
}

// Crash requests immediate termination: exit code 1 and no grace. Tasks are
// still invoked, but given only the minimum guard window.
func (m *Manager) Crash() error {
	return m.Exit(WithExitCode(1), WithExitGrace(0))
}

// ExitCode returns the currently recorded exit code. Readable at any time.
func (m *Manager) ExitCode() int {
	return m.state.Code()
}

// Wait blocks until the shutdown pipeline has settled.
func (m *Manager) Wait() {
	<-m.done
}

// Errors returns every task failure observed during the run, in registration
// order within each group. It returns nil while the pipeline has not settled.
func (m *Manager) Errors() errx.MultiError {
	select {
	case <-m.done:
		return m.stopErrs
	default:
		return nil
	}
}

// runPipeline executes the single shutdown sequence. Called exactly once, by
// the trigger that won the Begin race.
func (m *Manager) runPipeline(grace time.Duration) {
	tasks := m.tasks.snapshot()
	m.log.Info("shutdown started",
		zap.Int("tasks", len(tasks)),
		zap.Duration("grace", grace),
	)

	diags, err := pipeline{log: m.log}.run(tasks, grace)

	m.stopErrs = diags
	if err != nil {
		m.runErr = err
		m.cfg.onStopError(err)
		m.state.RecordCode(1)
	}
	close(m.done)
}

// armWatchdog starts the drain watchdog: an abandoned goroutine that forces
// termination if the process is still alive after drainGrace. It is never
// joined, so it cannot block a natural exit; if the process exits naturally
// first, its effect is simply never observed.
func (m *Manager) armWatchdog() {
	go func() {
		time.Sleep(m.cfg.drainGrace)
		m.log.Warn("drain grace elapsed, forcing termination",
			zap.Duration("drainGrace", m.cfg.drainGrace),
			zap.Int("code", m.state.Code()),
		)
		m.cfg.onDrainTimeout()
		m.proc.Exit(m.state.Code())
	}()
}
