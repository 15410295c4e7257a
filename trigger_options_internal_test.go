package termination

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WithCustomSystemSignal(t *testing.T) {
	t.Parallel()

	t.Run("ok/assigns_same_channel", func(t *testing.T) {
		t.Parallel()
		// arrange
		cfg := &triggerConfig{}
		ch := make(chan os.Signal, 1)

		// act
		WithCustomSystemSignal(ch)(cfg)

		// assert
		assert.NotNil(t, cfg.sysch)
	})

	t.Run("edge/nil", func(t *testing.T) {
		t.Parallel()
		// arrange
		cfg := &triggerConfig{}

		// act
		WithCustomSystemSignal(nil)(cfg)

		// assert
		assert.Nil(t, cfg.sysch)
	})
}

func Test_WithSysSignal(t *testing.T) {
	t.Run("ok/creates_buffered_channel_and_registers", func(t *testing.T) {
		// arrange
		cfg := &triggerConfig{}

		// act
		WithSysSignal()(cfg)

		// assert
		assert.NotNil(t, cfg.sysch)
	})
}

func Test_WithUserChanSignal(t *testing.T) {
	t.Parallel()

	t.Run("ok/multiple_channels_preserved", func(t *testing.T) {
		t.Parallel()
		// arrange
		cfg := &triggerConfig{}
		a := make(chan struct{})
		b := make(chan struct{})
		c := make(chan struct{})

		// act
		WithUserChanSignal(a, b, c)(cfg)

		// assert
		assert.Len(t, cfg.usrch, 3)
	})

	t.Run("edge/empty", func(t *testing.T) {
		t.Parallel()
		// arrange
		cfg := &triggerConfig{}

		// act
		WithUserChanSignal()(cfg)

		// assert
		assert.Empty(t, cfg.usrch)
	})
}

func Test_newDefaultTriggerConfig(t *testing.T) {
	t.Run("ok/sysSignalBound", func(t *testing.T) {
		// act
		cfg := newDefaultTriggerConfig()

		// assert
		assert.NotNil(t, cfg.sysch)
		assert.Empty(t, cfg.usrch)
	})
}
