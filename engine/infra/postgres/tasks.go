package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/task"
)

var taskColumns = []string{
	"id", "process_id", "name", "description", "kind", "sequence_number",
	"enabled", "input_source", "input", "save_input", "connector_kind",
	"option_kind", "logic_kind", "response", "created_at", "updated_at",
}

// TaskRepo implements task.Repository on postgres. Tasks persist as one
// flat row per task; the kind-specific payload columns are nullable and
// translated back into the tagged form by task.Row.
type TaskRepo struct {
	db DB
}

func NewTaskRepo(db DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(ctx context.Context, t *task.Task) (*task.Task, error) {
	row := t.ToRow()
	seq := any(row.SequenceNumber)
	if row.SequenceNumber == 0 {
		// Append to the end of the process in the same statement so two
		// concurrent creates cannot pick the same slot.
		seq = sq.Expr(
			"COALESCE((SELECT MAX(sequence_number) FROM tasks WHERE process_id = ?), 0) + ?",
			row.ProcessID, task.SequenceSpacing,
		)
	}
	query, args, err := sq.Insert("tasks").
		Columns("process_id", "name", "description", "kind", "sequence_number",
			"enabled", "input_source", "input", "save_input", "connector_kind",
			"option_kind", "logic_kind", "response").
		Values(row.ProcessID, row.Name, row.Description, row.Kind, seq,
			row.Enabled, row.InputSource, row.Input, row.SaveInput, row.ConnectorKind,
			row.OptionKind, row.LogicKind, row.Response).
		Suffix("RETURNING " + columnList(taskColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("task", err)
	}
	var created task.Row
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("task", err)
	}
	return created.ToTask(), nil
}

func (r *TaskRepo) Get(ctx context.Context, id core.ID) (*task.Task, error) {
	query, args, err := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("task", err)
	}
	var row task.Row
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		return nil, wrapGetErr("task", fmt.Sprintf("task %s not found", id), err)
	}
	return row.ToTask(), nil
}

func (r *TaskRepo) List(ctx context.Context, filter task.Filter, page core.PageQuery) ([]*task.Task, error) {
	page = page.Normalize()
	builder := sq.Select(taskColumns...).
		From("tasks").
		OrderBy("sequence_number", "id").
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit)).
		PlaceholderFormat(sq.Dollar)
	if filter.ProcessID != nil {
		builder = builder.Where(sq.Eq{"process_id": *filter.ProcessID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, core.StorageFailure("task", err)
	}
	rows := []*task.Row{}
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, core.StorageFailure("task", err)
	}
	tasks := make([]*task.Task, len(rows))
	for i, row := range rows {
		tasks[i] = row.ToTask()
	}
	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, t *task.Task) (*task.Task, error) {
	row := t.ToRow()
	query, args, err := sq.Update("tasks").
		Set("process_id", row.ProcessID).
		Set("name", row.Name).
		Set("description", row.Description).
		Set("kind", row.Kind).
		Set("sequence_number", row.SequenceNumber).
		Set("enabled", row.Enabled).
		Set("input_source", row.InputSource).
		Set("input", row.Input).
		Set("save_input", row.SaveInput).
		Set("connector_kind", row.ConnectorKind).
		Set("option_kind", row.OptionKind).
		Set("logic_kind", row.LogicKind).
		Set("response", row.Response).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": row.ID}).
		Suffix("RETURNING " + columnList(taskColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("task", err)
	}
	var updated task.Row
	if err := pgxscan.Get(ctx, r.db, &updated, query, args...); err != nil {
		return nil, wrapGetErr("task", fmt.Sprintf("task %s not found", row.ID), err)
	}
	return updated.ToTask(), nil
}

// Delete removes the task together with the fields, connectors, and
// transformations it owns, all in one transaction. Transformations go
// first since they reference field rows.
func (r *TaskRepo) Delete(ctx context.Context, id core.ID) (*task.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, core.StorageFailure("task", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, table := range []string{"transformations", "fields", "connectors"} {
		query, args, err := sq.Delete(table).
			Where(sq.Eq{"task_id": id}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return nil, core.StorageFailure("task", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, core.StorageFailure("task", err)
		}
	}

	query, args, err := sq.Delete("tasks").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(taskColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("task", err)
	}
	var deleted task.Row
	if err := pgxscan.Get(ctx, tx, &deleted, query, args...); err != nil {
		return nil, wrapGetErr("task", fmt.Sprintf("task %s not found", id), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, core.StorageFailure("task", err)
	}
	return deleted.ToTask(), nil
}

// Resequence applies the assignments in one transaction and returns the
// updated tasks in assignment order.
func (r *TaskRepo) Resequence(ctx context.Context, assignments []task.SequenceAssignment) ([]*task.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, core.StorageFailure("task", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	updated := make([]*task.Task, 0, len(assignments))
	for _, a := range assignments {
		query, args, err := sq.Update("tasks").
			Set("sequence_number", a.SequenceNumber).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": a.TaskID}).
			Suffix("RETURNING " + columnList(taskColumns)).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return nil, core.StorageFailure("task", err)
		}
		var row task.Row
		if err := pgxscan.Get(ctx, tx, &row, query, args...); err != nil {
			return nil, wrapGetErr("task", fmt.Sprintf("task %s not found", a.TaskID), err)
		}
		updated = append(updated, row.ToTask())
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, core.StorageFailure("task", err)
	}
	return updated, nil
}
