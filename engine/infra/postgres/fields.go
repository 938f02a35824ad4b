package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
)

var fieldColumns = []string{
	"id", "task_id", "field_name", "data_type", "value", "created_at", "updated_at",
}

// FieldRepo implements field.Repository on postgres.
type FieldRepo struct {
	db DB
}

func NewFieldRepo(db DB) *FieldRepo {
	return &FieldRepo{db: db}
}

func (r *FieldRepo) Create(ctx context.Context, f *field.Field) (*field.Field, error) {
	query, args, err := sq.Insert("fields").
		Columns("task_id", "field_name", "data_type", "value").
		Values(f.TaskID, f.Key, f.DataType, f.Value).
		Suffix("RETURNING " + columnList(fieldColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("field", err)
	}
	var created field.Field
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("field", err)
	}
	return &created, nil
}

// CreateBatch inserts every field in one transaction; the first failure
// rolls the whole batch back.
func (r *FieldRepo) CreateBatch(ctx context.Context, fields []*field.Field) ([]*field.Field, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, core.StorageFailure("field", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	created := make([]*field.Field, 0, len(fields))
	for _, f := range fields {
		query, args, err := sq.Insert("fields").
			Columns("task_id", "field_name", "data_type", "value").
			Values(f.TaskID, f.Key, f.DataType, f.Value).
			Suffix("RETURNING " + columnList(fieldColumns)).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return nil, core.StorageFailure("field", err)
		}
		var row field.Field
		if err := pgxscan.Get(ctx, tx, &row, query, args...); err != nil {
			return nil, wrapWriteErr("field", err)
		}
		created = append(created, &row)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, core.StorageFailure("field", err)
	}
	return created, nil
}

func (r *FieldRepo) Get(ctx context.Context, id core.ID) (*field.Field, error) {
	query, args, err := sq.Select(fieldColumns...).
		From("fields").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("field", err)
	}
	var f field.Field
	if err := pgxscan.Get(ctx, r.db, &f, query, args...); err != nil {
		return nil, wrapGetErr("field", fmt.Sprintf("field %s not found", id), err)
	}
	return &f, nil
}

func (r *FieldRepo) List(ctx context.Context, filter field.Filter, page core.PageQuery) ([]*field.Field, error) {
	page = page.Normalize()
	builder := sq.Select(fieldColumns...).
		From("fields").
		OrderBy("id").
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit)).
		PlaceholderFormat(sq.Dollar)
	if filter.TaskID != nil {
		builder = builder.Where(sq.Eq{"task_id": *filter.TaskID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, core.StorageFailure("field", err)
	}
	fields := []*field.Field{}
	if err := pgxscan.Select(ctx, r.db, &fields, query, args...); err != nil {
		return nil, core.StorageFailure("field", err)
	}
	return fields, nil
}

func (r *FieldRepo) Update(ctx context.Context, f *field.Field) (*field.Field, error) {
	query, args, err := sq.Update("fields").
		Set("task_id", f.TaskID).
		Set("field_name", f.Key).
		Set("data_type", f.DataType).
		Set("value", f.Value).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": f.ID}).
		Suffix("RETURNING " + columnList(fieldColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("field", err)
	}
	var updated field.Field
	if err := pgxscan.Get(ctx, r.db, &updated, query, args...); err != nil {
		return nil, wrapGetErr("field", fmt.Sprintf("field %s not found", f.ID), err)
	}
	return &updated, nil
}

func (r *FieldRepo) Delete(ctx context.Context, id core.ID) (*field.Field, error) {
	query, args, err := sq.Delete("fields").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(fieldColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("field", err)
	}
	var deleted field.Field
	if err := pgxscan.Get(ctx, r.db, &deleted, query, args...); err != nil {
		return nil, wrapGetErr("field", fmt.Sprintf("field %s not found", id), err)
	}
	return &deleted, nil
}
