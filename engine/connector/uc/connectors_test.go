package uc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/agent"
	agentuc "github.com/integraph/integraph/engine/agent/uc"
	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/memory"
	"github.com/integraph/integraph/engine/process"
	processuc "github.com/integraph/integraph/engine/process/uc"
	"github.com/integraph/integraph/engine/task"
	taskuc "github.com/integraph/integraph/engine/task/uc"
	"github.com/integraph/integraph/pkg/logger"
)

func testContext() context.Context {
	return logger.ContextWithLogger(context.Background(), logger.NewTestLogger())
}

func seedTask(t *testing.T, store *memory.Store, ctx context.Context) *task.Task {
	t.Helper()
	owner, err := agentuc.NewCreate(store.Agents(), &agentuc.CreateInput{
		Name: "warehouse-agent", Code: "WH-01", Kind: agent.KindService,
	}).Execute(ctx)
	require.NoError(t, err)
	proc, err := processuc.NewCreate(store.Processes(), store.Agents(), &processuc.CreateInput{
		AgentID:     owner.ID,
		Name:        "invoice-sync",
		TriggerKind: process.TriggerScheduler,
	}).Execute(ctx)
	require.NoError(t, err)
	created, err := taskuc.NewCreate(store.Tasks(), store.Processes(), &taskuc.Input{
		ProcessID:     proc.ID,
		Name:          "export",
		Kind:          task.KindOutput,
		OutputPayload: &task.OutputPayload{ConnectorKind: connector.KindDatabase, Option: task.OptionNone},
	}).Execute(ctx)
	require.NoError(t, err)
	return created
}

func databaseInput(taskID core.ID) *Input {
	return &Input{
		TaskID:           taskID,
		Kind:             connector.KindDatabase,
		DatabaseKind:     connector.DatabaseSQL,
		ConnectionString: "Server=dw;Database=sales",
		QueryKind:        connector.QuerySelect,
		Query:            "SELECT id FROM invoices",
	}
}

func TestCreate_Execute(t *testing.T) {
	t.Run("Should create a database connector under an existing task", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedTask(t, store, ctx)
		created, err := NewCreate(store.Connectors(), store.Tasks(), databaseInput(owner.ID)).Execute(ctx)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, connector.KindDatabase, created.Kind)
	})

	t.Run("Should reject a database connector without a query", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedTask(t, store, ctx)
		input := databaseInput(owner.ID)
		input.Query = ""
		_, err := NewCreate(store.Connectors(), store.Tasks(), input).Execute(ctx)
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
	})

	t.Run("Should reject a connector under a missing task", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		_, err := NewCreate(store.Connectors(), store.Tasks(), databaseInput(999)).Execute(ctx)
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
	})

	t.Run("Should ignore attributes belonging to other kinds", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedTask(t, store, ctx)
		input := databaseInput(owner.ID)
		input.QueuePath = `\\host\queue` // not a MessageQueue connector
		created, err := NewCreate(store.Connectors(), store.Tasks(), input).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, connector.KindDatabase, created.Kind)
	})
}

func TestUpdate_Execute(t *testing.T) {
	t.Run("Should replace the connector attributes", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedTask(t, store, ctx)
		created, err := NewCreate(store.Connectors(), store.Tasks(), databaseInput(owner.ID)).Execute(ctx)
		require.NoError(t, err)
		updated, err := NewUpdate(store.Connectors(), store.Tasks(), created.ID, &Input{
			TaskID:    owner.ID,
			Kind:      connector.KindEmail,
			FromEmail: "noreply@example.com",
			Email:     "ops@example.com",
			Subject:   "nightly export",
		}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, connector.KindEmail, updated.Kind)
		assert.Equal(t, "ops@example.com", updated.Email)
	})

	t.Run("Should reject an update that strips a required attribute", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedTask(t, store, ctx)
		created, err := NewCreate(store.Connectors(), store.Tasks(), databaseInput(owner.ID)).Execute(ctx)
		require.NoError(t, err)
		input := databaseInput(owner.ID)
		input.ConnectionString = ""
		_, err = NewUpdate(store.Connectors(), store.Tasks(), created.ID, input).Execute(ctx)
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
	})
}

func TestDelete_Execute(t *testing.T) {
	t.Run("Should delete a connector", func(t *testing.T) {
		store := memory.NewStore()
		ctx := testContext()
		owner := seedTask(t, store, ctx)
		created, err := NewCreate(store.Connectors(), store.Tasks(), databaseInput(owner.ID)).Execute(ctx)
		require.NoError(t, err)
		deleted, err := NewDelete(store.Connectors(), created.ID).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)
		_, err = NewGet(store.Connectors(), created.ID).Execute(ctx)
		assert.True(t, core.IsNotFound(err))
	})
}
