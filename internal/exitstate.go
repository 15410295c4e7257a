package internal

import "sync"

// ExitState is the process-wide shutdown state shared by every trigger path:
// the "shutdown started" flag and the exit code. Both must stay consistent
// under concurrent triggers (e.g. an OS signal and a panic arriving close
// together), so a single mutex guards them.
type ExitState struct {
	mu      sync.Mutex
	exiting bool
	code    int
}

func NewExitState() *ExitState {
	return &ExitState{}
}

// Begin marks shutdown as started. The false->true transition happens exactly
// once: Begin returns true for exactly one caller over the process lifetime
// and false for every other, and the transition is immediately visible to
// subsequent calls.
func (s *ExitState) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exiting {
		return false
	}
	s.exiting = true
	return true
}

// Exiting reports whether shutdown has started.
func (s *ExitState) Exiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exiting
}

// RecordCode applies the exit-code arbitration rule: while the recorded code
// is zero it is set to code; once non-zero it is never overwritten.
func (s *ExitState) RecordCode(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.code == 0 {
		s.code = code
	}
}

// Code returns the currently recorded exit code.
func (s *ExitState) Code() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.code
}
