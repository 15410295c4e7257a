package termination

import (
	"os"
	"os/signal"
	"syscall"
)

// triggerConfig represents the configuration for shutdown triggers.
type triggerConfig struct {
	sysch <-chan os.Signal
	usrch []<-chan struct{}
}

type TriggerOption func(*triggerConfig)

// WithCustomSystemSignal replaces the OS signal channel with a caller-owned
// one.
//
// Example:
//
//	ch := make(chan os.Signal, 1)
//	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
//	m.SetTrigger(ctx, termination.WithCustomSystemSignal(ch))
func WithCustomSystemSignal(ch chan os.Signal) TriggerOption {
	return func(c *triggerConfig) {
		c.sysch = ch
	}
}

// WithSysSignal adds default OS signal handling for graceful shutdown.
//
// SIGINT (Signal Interrupt) - typically sent when the user presses Ctrl+C.
// SIGTERM (Signal Terminate) - polite request to terminate the program
// (e.g., from Docker or Kubernetes).
//
// Example:
//
//	m.SetTrigger(ctx, termination.WithSysSignal())
func WithSysSignal() TriggerOption {
	return func(c *triggerConfig) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

		c.sysch = ch
	}
}

// WithUserChanSignal adds custom user channels that trigger graceful shutdown
// when they receive a value or are closed. Useful for shutdown conditions
// beyond OS signals.
func WithUserChanSignal(uch ...<-chan struct{}) TriggerOption {
	return func(c *triggerConfig) {
		c.usrch = uch
	}
}

// newDefaultTriggerConfig creates the default config.
func newDefaultTriggerConfig() *triggerConfig {
	config := &triggerConfig{}
	WithSysSignal()(config)

	return config
}
