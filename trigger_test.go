package termination_test

import (
	"context"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	termination "github.com/CDECatapult/termination-manager"
	"github.com/stretchr/testify/assert"
)

func Test_SetTrigger(t *testing.T) {
	t.Parallel()

	t.Run("ok/userChannelTriggersExit", func(t *testing.T) {
		t.Parallel()
		// arrange
		m := termination.New(termination.WithProcess(newFakeProc()))
		var calls int32
		assert.NoError(t, m.AddFunc("flush", 0, func(time.Duration) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		uch := make(chan struct{}, 1)
		m.SetTrigger(ctx, termination.WithUserChanSignal(uch))

		// act
		uch <- struct{}{}

		// assert
		waitSettled(t, m)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, 0, m.ExitCode())
	})

	t.Run("ok/sigintRunsHookThenExit", func(t *testing.T) {
		t.Parallel()
		// arrange
		var hooked atomic.Bool
		m := termination.New(
			termination.WithProcess(newFakeProc()),
			termination.WithOnSigint(func() { hooked.Store(true) }),
		)
		var calls int32
		assert.NoError(t, m.AddFunc("flush", 0, func(time.Duration) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sig := make(chan os.Signal, 1)
		m.SetTrigger(ctx, termination.WithCustomSystemSignal(sig))

		// act
		sig <- syscall.SIGINT

		// assert
		waitSettled(t, m)
		assert.True(t, hooked.Load())
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("ok/sigtermRunsHook", func(t *testing.T) {
		t.Parallel()
		// arrange
		var hooked atomic.Bool
		m := termination.New(
			termination.WithProcess(newFakeProc()),
			termination.WithOnSigterm(func() { hooked.Store(true) }),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sig := make(chan os.Signal, 1)
		m.SetTrigger(ctx, termination.WithCustomSystemSignal(sig))

		// act
		sig <- syscall.SIGTERM

		// assert
		waitSettled(t, m)
		assert.True(t, hooked.Load())
	})

	t.Run("ok/secondSignalForcesExit", func(t *testing.T) {
		t.Parallel()
		// arrange: the task hangs so the pipeline is still in flight when the
		// second signal arrives
		proc := newFakeProc()
		block := make(chan struct{})
		defer close(block)
		m := termination.New(termination.WithProcess(proc))
		assert.NoError(t, m.AddFunc("hung", 0, func(time.Duration) error {
			<-block
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sig := make(chan os.Signal, 1)
		m.SetTrigger(ctx, termination.WithCustomSystemSignal(sig))

		// act
		sig <- syscall.SIGTERM
		time.Sleep(100 * time.Millisecond)
		sig <- syscall.SIGTERM

		// assert
		select {
		case code := <-proc.fired:
			assert.Equal(t, 1, code)
		case <-time.After(2 * time.Second):
			t.Fatalf("second signal did not force exit")
		}
	})
}

func Test_Recover(t *testing.T) {
	t.Parallel()

	t.Run("ok/panicRunsHookCrashesAndTerminates", func(t *testing.T) {
		t.Parallel()
		// arrange
		proc := newFakeProc()
		var got atomic.Value
		m := termination.New(
			termination.WithProcess(proc),
			termination.WithOnPanic(func(r any) { got.Store(r) }),
		)
		var calls int32
		assert.NoError(t, m.AddFunc("flush", 0, func(time.Duration) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}))

		// act
		func() {
			defer m.Recover()
			panic("kaboom")
		}()

		// assert
		assert.Equal(t, "kaboom", got.Load())
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, 1, m.ExitCode())
		assert.Equal(t, []int{1}, proc.calls())
	})

	t.Run("edge/noPanicNoEffect", func(t *testing.T) {
		t.Parallel()
		// arrange
		proc := newFakeProc()
		m := termination.New(termination.WithProcess(proc))

		// act
		func() {
			defer m.Recover()
		}()

		// assert
		assert.Equal(t, 0, m.ExitCode())
		assert.Empty(t, proc.calls())
	})
}

// waitSettled fails the test if the manager's pipeline does not settle within
// two seconds.
func waitSettled(t *testing.T, m *termination.Manager) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("shutdown pipeline did not settle in time")
	}
}
