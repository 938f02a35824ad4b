package uc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/agent"
	agentuc "github.com/integraph/integraph/engine/agent/uc"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/memory"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/pkg/logger"
)

func testContext() context.Context {
	return logger.ContextWithLogger(context.Background(), logger.NewTestLogger())
}

func seedAgent(t *testing.T, store *memory.Store, ctx context.Context) *agent.Agent {
	t.Helper()
	created, err := agentuc.NewCreate(store.Agents(), &agentuc.CreateInput{
		Name: "warehouse-agent", Code: "WH-01", Kind: agent.KindService,
	}).Execute(ctx)
	require.NoError(t, err)
	return created
}

func seedProcess(t *testing.T, store *memory.Store, ctx context.Context, agentID core.ID) *process.Process {
	t.Helper()
	created, err := NewCreate(store.Processes(), store.Agents(), &CreateInput{
		AgentID:     agentID,
		Name:        "invoice-sync",
		TriggerKind: process.TriggerScheduler,
	}).Execute(ctx)
	require.NoError(t, err)
	return created
}

func TestCreate_Execute(t *testing.T) {
	t.Run("Should create a process in the stopped state", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedAgent(t, store, ctx)
		created := seedProcess(t, store, ctx, owner.ID)
		assert.Equal(t, process.StatusStopped, created.Status)
		assert.NotZero(t, created.ID)
	})

	t.Run("Should reject a process for an unknown agent", func(t *testing.T) {
		store := memory.NewStore()
		_, err := NewCreate(store.Processes(), store.Agents(), &CreateInput{
			AgentID:     42,
			Name:        "invoice-sync",
			TriggerKind: process.TriggerWebHook,
		}).Execute(testContext())
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
	})
}

func TestUpdate_Execute(t *testing.T) {
	t.Run("Should preserve the status across field updates", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedAgent(t, store, ctx)
		created := seedProcess(t, store, ctx, owner.ID)
		_, err := NewStart(store.Processes(), created.ID).Execute(ctx)
		require.NoError(t, err)

		updated, err := NewUpdate(store.Processes(), store.Agents(), created.ID, &UpdateInput{
			AgentID:     owner.ID,
			Name:        "invoice-sync-v2",
			TriggerKind: process.TriggerWebService,
		}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "invoice-sync-v2", updated.Name)
		assert.Equal(t, process.StatusRunning, updated.Status)
	})

	t.Run("Should reject moving a process to an unknown agent", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedAgent(t, store, ctx)
		created := seedProcess(t, store, ctx, owner.ID)

		_, err := NewUpdate(store.Processes(), store.Agents(), created.ID, &UpdateInput{
			AgentID:     owner.ID + 100,
			Name:        "invoice-sync",
			TriggerKind: process.TriggerScheduler,
		}).Execute(ctx)
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
	})
}

func TestStartStop_Execute(t *testing.T) {
	t.Run("Should run through a start stop cycle", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedAgent(t, store, ctx)
		created := seedProcess(t, store, ctx, owner.ID)

		started, err := NewStart(store.Processes(), created.ID).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, process.StatusRunning, started.Status)

		stopped, err := NewStop(store.Processes(), created.ID).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, process.StatusStopped, stopped.Status)
	})

	t.Run("Should keep start idempotent", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedAgent(t, store, ctx)
		created := seedProcess(t, store, ctx, owner.ID)

		first, err := NewStart(store.Processes(), created.ID).Execute(ctx)
		require.NoError(t, err)
		second, err := NewStart(store.Processes(), created.ID).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, process.StatusRunning, second.Status)
		assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	})

	t.Run("Should report a missing process on start", func(t *testing.T) {
		store := memory.NewStore()
		_, err := NewStart(store.Processes(), 7).Execute(testContext())
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
	})
}

func TestList_Execute(t *testing.T) {
	t.Run("Should filter processes by agent", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		first := seedAgent(t, store, ctx)
		second, err := agentuc.NewCreate(store.Agents(), &agentuc.CreateInput{
			Name: "crm-agent", Code: "CRM-01", Kind: agent.KindService,
		}).Execute(ctx)
		require.NoError(t, err)
		seedProcess(t, store, ctx, first.ID)
		seedProcess(t, store, ctx, second.ID)

		filtered, err := NewList(store.Processes(), process.Filter{AgentID: &second.ID}, core.PageQuery{}).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, second.ID, filtered[0].AgentID)
	})
}
