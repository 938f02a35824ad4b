package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/core"
)

func validProcess() *Process {
	return &Process{
		AgentID:     1,
		Name:        "invoice-sync",
		TriggerKind: TriggerScheduler,
		Status:      StatusStopped,
	}
}

func TestProcess_Validate(t *testing.T) {
	t.Run("Should accept a complete process", func(t *testing.T) {
		assert.NoError(t, validProcess().Validate())
	})

	t.Run("Should reject a missing agent reference", func(t *testing.T) {
		p := validProcess()
		p.AgentID = 0
		err := p.Validate()
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
		assert.Contains(t, err.Error(), "agent_id is required")
	})

	t.Run("Should reject an empty name", func(t *testing.T) {
		p := validProcess()
		p.Name = ""
		err := p.Validate()
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
	})

	t.Run("Should reject an unknown trigger kind", func(t *testing.T) {
		p := validProcess()
		p.TriggerKind = "Carrier Pigeon"
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown trigger kind")
	})
}

func TestProcess_Start(t *testing.T) {
	t.Run("Should start a stopped process", func(t *testing.T) {
		p := validProcess()
		require.NoError(t, p.Start())
		assert.Equal(t, StatusRunning, p.Status)
	})

	t.Run("Should start a paused process", func(t *testing.T) {
		p := validProcess()
		p.Status = StatusPaused
		require.NoError(t, p.Start())
		assert.Equal(t, StatusRunning, p.Status)
	})

	t.Run("Should recover a process from error", func(t *testing.T) {
		p := validProcess()
		p.Status = StatusError
		require.NoError(t, p.Start())
		assert.Equal(t, StatusRunning, p.Status)
	})

	t.Run("Should treat starting a running process as a no-op", func(t *testing.T) {
		p := validProcess()
		p.Status = StatusRunning
		require.NoError(t, p.Start())
		assert.Equal(t, StatusRunning, p.Status)
	})
}

func TestProcess_Stop(t *testing.T) {
	t.Run("Should stop a running process", func(t *testing.T) {
		p := validProcess()
		p.Status = StatusRunning
		require.NoError(t, p.Stop())
		assert.Equal(t, StatusStopped, p.Status)
	})

	t.Run("Should stop a paused process", func(t *testing.T) {
		p := validProcess()
		p.Status = StatusPaused
		require.NoError(t, p.Stop())
		assert.Equal(t, StatusStopped, p.Status)
	})

	t.Run("Should treat stopping a stopped process as a no-op", func(t *testing.T) {
		p := validProcess()
		require.NoError(t, p.Stop())
		assert.Equal(t, StatusStopped, p.Status)
	})

	t.Run("Should refuse to stop a process in error", func(t *testing.T) {
		p := validProcess()
		p.Status = StatusError
		err := p.Stop()
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
		assert.Equal(t, StatusError, p.Status)
	})
}
