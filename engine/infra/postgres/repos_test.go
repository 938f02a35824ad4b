package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/postgres"
	"github.com/integraph/integraph/engine/schedule"
	"github.com/integraph/integraph/engine/task"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func agentRows(pool pgxmock.PgxPoolIface, a *agent.Agent) *pgxmock.Rows {
	return pool.NewRows([]string{
		"id", "name", "code", "kind", "enabled", "updates_available",
		"created_at", "updated_at",
	}).AddRow(a.ID, a.Name, a.Code, a.Kind, a.Enabled, a.UpdatesAvailable, a.CreatedAt, a.UpdatedAt)
}

func logicTaskRows(pool pgxmock.PgxPoolIface, id, processID core.ID, seq int) *pgxmock.Rows {
	var (
		nilStr  *string
		nilBool *bool
	)
	logicKind := string(task.LogicUniqueFilter)
	now := time.Now()
	return pool.NewRows([]string{
		"id", "process_id", "name", "description", "kind", "sequence_number",
		"enabled", "input_source", "input", "save_input", "connector_kind",
		"option_kind", "logic_kind", "response", "created_at", "updated_at",
	}).AddRow(id, processID, "dedupe", "", string(task.KindLogic), seq,
		true, nilStr, nilStr, nilBool, nilStr, nilStr, &logicKind, nilStr, now, now)
}

func TestAgentRepo_Create(t *testing.T) {
	t.Run("Should create an agent and scan the returned row", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewAgentRepo(pool)
		now := time.Now()
		want := &agent.Agent{
			ID: 1, Name: "warehouse-agent", Code: "wh-01", Kind: agent.KindProcess,
			Enabled: true, CreatedAt: now, UpdatedAt: now,
		}
		pool.ExpectQuery("INSERT INTO agents").
			WithArgs(want.Name, want.Code, want.Kind, want.Enabled, want.UpdatesAvailable).
			WillReturnRows(agentRows(pool, want))
		created, err := repo.Create(context.Background(), &agent.Agent{
			Name: want.Name, Code: want.Code, Kind: want.Kind, Enabled: true,
		})
		require.NoError(t, err)
		assert.Equal(t, want.ID, created.ID)
		assert.Equal(t, want.Code, created.Code)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("Should surface a unique violation as a conflict", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewAgentRepo(pool)
		pool.ExpectQuery("INSERT INTO agents").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "agents_code_key"})
		_, err := repo.Create(context.Background(), &agent.Agent{
			Name: "dup", Code: "wh-01", Kind: agent.KindProcess,
		})
		require.Error(t, err)
		assert.Equal(t, core.KindConflict, core.KindOf(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestAgentRepo_Get(t *testing.T) {
	t.Run("Should get an agent by id", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewAgentRepo(pool)
		now := time.Now()
		want := &agent.Agent{
			ID: 7, Name: "warehouse-agent", Code: "wh-01", Kind: agent.KindService,
			Enabled: true, CreatedAt: now, UpdatedAt: now,
		}
		pool.ExpectQuery("SELECT (.+) FROM agents WHERE id = \\$1").
			WithArgs(core.ID(7)).
			WillReturnRows(agentRows(pool, want))
		got, err := repo.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, agent.KindService, got.Kind)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("Should map a missing row to not found", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewAgentRepo(pool)
		pool.ExpectQuery("SELECT (.+) FROM agents WHERE id = \\$1").
			WithArgs(core.ID(99)).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.Get(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestTaskRepo_Delete(t *testing.T) {
	t.Run("Should delete the task and its children in one transaction", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewTaskRepo(pool)
		taskID := core.ID(5)

		pool.ExpectBegin()
		pool.ExpectExec("DELETE FROM transformations WHERE task_id = \\$1").
			WithArgs(taskID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		pool.ExpectExec("DELETE FROM fields WHERE task_id = \\$1").
			WithArgs(taskID).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		pool.ExpectExec("DELETE FROM connectors WHERE task_id = \\$1").
			WithArgs(taskID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		pool.ExpectQuery("DELETE FROM tasks WHERE id = \\$1").
			WithArgs(taskID).
			WillReturnRows(logicTaskRows(pool, taskID, 2, 10))
		pool.ExpectCommit()

		deleted, err := repo.Delete(context.Background(), taskID)
		require.NoError(t, err)
		assert.Equal(t, taskID, deleted.ID)
		require.NotNil(t, deleted.Logic)
		assert.Equal(t, task.LogicUniqueFilter, deleted.Logic.Kind)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("Should roll back when the task does not exist", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewTaskRepo(pool)
		taskID := core.ID(404)

		pool.ExpectBegin()
		for range 3 {
			pool.ExpectExec("DELETE FROM").
				WithArgs(taskID).
				WillReturnResult(pgxmock.NewResult("DELETE", 0))
		}
		pool.ExpectQuery("DELETE FROM tasks WHERE id = \\$1").
			WithArgs(taskID).
			WillReturnError(pgx.ErrNoRows)
		pool.ExpectRollback()

		_, err := repo.Delete(context.Background(), taskID)
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestTaskRepo_Resequence(t *testing.T) {
	t.Run("Should apply all assignments inside one transaction", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewTaskRepo(pool)
		assignments := []task.SequenceAssignment{
			{TaskID: 2, SequenceNumber: 10},
			{TaskID: 1, SequenceNumber: 20},
		}

		pool.ExpectBegin()
		for _, a := range assignments {
			pool.ExpectQuery("UPDATE tasks SET sequence_number = \\$1").
				WithArgs(a.SequenceNumber, a.TaskID).
				WillReturnRows(logicTaskRows(pool, a.TaskID, 9, a.SequenceNumber))
		}
		pool.ExpectCommit()

		updated, err := repo.Resequence(context.Background(), assignments)
		require.NoError(t, err)
		require.Len(t, updated, 2)
		assert.Equal(t, core.ID(2), updated[0].ID)
		assert.Equal(t, 10, updated[0].SequenceNumber)
		assert.Equal(t, core.ID(1), updated[1].ID)
		assert.Equal(t, 20, updated[1].SequenceNumber)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("Should roll back when an assignment targets a missing task", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewTaskRepo(pool)

		pool.ExpectBegin()
		pool.ExpectQuery("UPDATE tasks SET sequence_number = \\$1").
			WithArgs(10, core.ID(404)).
			WillReturnError(pgx.ErrNoRows)
		pool.ExpectRollback()

		_, err := repo.Resequence(context.Background(), []task.SequenceAssignment{
			{TaskID: 404, SequenceNumber: 10},
		})
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

// scheduleUpdateArgs matches the 11 placeholders in the schedule UPDATE
// statement (10 SET values plus the id in the WHERE clause).
func scheduleUpdateArgs() []interface{} {
	args := make([]interface{}, 11)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestScheduleRepo_Update(t *testing.T) {
	t.Run("Should surface a process uniqueness violation as a conflict", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewScheduleRepo(pool)
		pool.ExpectQuery("UPDATE schedules SET").
			WithArgs(scheduleUpdateArgs()...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "schedules_process_id_key"})
		_, err := repo.Update(context.Background(), &schedule.Schedule{
			ID: 1, ProcessID: 3, Recurrence: schedule.RecurrenceDaily, Hour: 8,
		})
		require.Error(t, err)
		assert.Equal(t, core.KindConflict, core.KindOf(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("Should map a missing schedule to not found", func(t *testing.T) {
		pool := newMockPool(t)
		repo := postgres.NewScheduleRepo(pool)
		pool.ExpectQuery("UPDATE schedules SET").
			WithArgs(scheduleUpdateArgs()...).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.Update(context.Background(), &schedule.Schedule{
			ID: 404, ProcessID: 3, Recurrence: schedule.RecurrenceDaily, Hour: 8,
		})
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}
