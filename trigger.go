package termination

import (
	"context"
	"syscall"

	"github.com/lif0/pkg/concurrency/chanx"
	"go.uber.org/zap"
)

// SetTrigger binds external termination triggers to the manager.
//
// It spawns a goroutine that waits on the configured OS signal channel and on
// the user channels (fanned in). The first trigger runs the matching hook
// (onSigint or onSigterm) and then a graceful Exit; any further trigger
// forces immediate termination with code 1. If ctx is cancelled before a
// trigger fires, the goroutine returns and the binding is gone.
func (m *Manager) SetTrigger(ctx context.Context, opts ...TriggerOption) {
	c := newDefaultTriggerConfig()
	for _, opt := range opts {
		opt(c)
	}

	go func() {
		var triggered bool
		userCh := chanx.FanIn(ctx, c.usrch...)

		for {
			var hook func()

			select {
			case <-ctx.Done():
				return
			case sig := <-c.sysch:
				m.log.Info("received system signal", zap.String("signal", sig.String()))
				switch sig {
				case syscall.SIGINT:
					hook = m.cfg.onSigint
				case syscall.SIGTERM:
					hook = m.cfg.onSigterm
				}
			case <-userCh:
				m.log.Info("received user shutdown trigger")
			}

			if triggered {
				m.log.Warn("received additional trigger, forcing exit")
				m.proc.Exit(1)
				continue
			}
			triggered = true

			// Exit blocks until the pipeline settles; run it aside so a
			// second trigger can still force exit.
			go func(hook func()) {
				if hook != nil {
					hook()
				}
				_ = m.Exit()
			}(hook)
		}
	}()
}

// Recover is meant for use in a defer at the top of main or of a critical
// goroutine, binding uncaught panics to the manager. On panic it runs the
// onPanic hook, attempts an immediate shutdown via Crash, then terminates the
// process with the recorded exit code.
//
//	func main() {
//		m := termination.New()
//		defer m.Recover()
//		// ...
//	}
func (m *Manager) Recover() {
	if r := recover(); r != nil {
		m.log.Error("uncaught panic, crashing", zap.Any("panic", r))
		m.cfg.onPanic(r)
		_ = m.Crash()
		m.proc.Exit(m.state.Code())
	}
}
