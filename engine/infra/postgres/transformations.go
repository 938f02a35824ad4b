package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/transformation"
)

var transformationColumns = []string{
	"id", "task_id", "condition_field_id", "value_field_id", "condition_kind",
	"created_at", "updated_at",
}

// TransformationRepo implements transformation.Repository on postgres.
type TransformationRepo struct {
	db DB
}

func NewTransformationRepo(db DB) *TransformationRepo {
	return &TransformationRepo{db: db}
}

func (r *TransformationRepo) Create(ctx context.Context, t *transformation.Transformation) (*transformation.Transformation, error) {
	query, args, err := sq.Insert("transformations").
		Columns("task_id", "condition_field_id", "value_field_id", "condition_kind").
		Values(t.TaskID, t.ConditionFieldID, t.ValueFieldID, t.ConditionKind).
		Suffix("RETURNING " + columnList(transformationColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	var created transformation.Transformation
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("transformation", err)
	}
	return &created, nil
}

// CreateBatch inserts every transformation in one transaction; the first
// failure rolls the whole batch back.
func (r *TransformationRepo) CreateBatch(ctx context.Context, ts []*transformation.Transformation) ([]*transformation.Transformation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	created := make([]*transformation.Transformation, 0, len(ts))
	for _, t := range ts {
		query, args, err := sq.Insert("transformations").
			Columns("task_id", "condition_field_id", "value_field_id", "condition_kind").
			Values(t.TaskID, t.ConditionFieldID, t.ValueFieldID, t.ConditionKind).
			Suffix("RETURNING " + columnList(transformationColumns)).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return nil, core.StorageFailure("transformation", err)
		}
		var row transformation.Transformation
		if err := pgxscan.Get(ctx, tx, &row, query, args...); err != nil {
			return nil, wrapWriteErr("transformation", err)
		}
		created = append(created, &row)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	return created, nil
}

func (r *TransformationRepo) Get(ctx context.Context, id core.ID) (*transformation.Transformation, error) {
	query, args, err := sq.Select(transformationColumns...).
		From("transformations").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	var t transformation.Transformation
	if err := pgxscan.Get(ctx, r.db, &t, query, args...); err != nil {
		return nil, wrapGetErr("transformation", fmt.Sprintf("transformation %s not found", id), err)
	}
	return &t, nil
}

func (r *TransformationRepo) List(ctx context.Context, filter transformation.Filter, page core.PageQuery) ([]*transformation.Transformation, error) {
	page = page.Normalize()
	builder := sq.Select(transformationColumns...).
		From("transformations").
		OrderBy("id").
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit)).
		PlaceholderFormat(sq.Dollar)
	if filter.TaskID != nil {
		builder = builder.Where(sq.Eq{"task_id": *filter.TaskID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	transformations := []*transformation.Transformation{}
	if err := pgxscan.Select(ctx, r.db, &transformations, query, args...); err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	return transformations, nil
}

func (r *TransformationRepo) Update(ctx context.Context, t *transformation.Transformation) (*transformation.Transformation, error) {
	query, args, err := sq.Update("transformations").
		Set("task_id", t.TaskID).
		Set("condition_field_id", t.ConditionFieldID).
		Set("value_field_id", t.ValueFieldID).
		Set("condition_kind", t.ConditionKind).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": t.ID}).
		Suffix("RETURNING " + columnList(transformationColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	var updated transformation.Transformation
	if err := pgxscan.Get(ctx, r.db, &updated, query, args...); err != nil {
		return nil, wrapGetErr("transformation", fmt.Sprintf("transformation %s not found", t.ID), err)
	}
	return &updated, nil
}

func (r *TransformationRepo) Delete(ctx context.Context, id core.ID) (*transformation.Transformation, error) {
	query, args, err := sq.Delete("transformations").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(transformationColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("transformation", err)
	}
	var deleted transformation.Transformation
	if err := pgxscan.Get(ctx, r.db, &deleted, query, args...); err != nil {
		return nil, wrapGetErr("transformation", fmt.Sprintf("transformation %s not found", id), err)
	}
	return &deleted, nil
}
