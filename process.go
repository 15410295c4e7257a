package termination

import "os"

// Process is the terminate-process-now primitive the manager depends on.
// The manager never calls the OS directly, so tests can observe forced
// termination instead of dying with the test binary.
type Process interface {
	// Exit terminates the process immediately with the given code.
	Exit(code int)
}

type osProcess struct{}

func (osProcess) Exit(code int) { os.Exit(code) }
