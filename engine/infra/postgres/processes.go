package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/process"
)

var processColumns = []string{
	"id", "agent_id", "name", "description", "auto_start", "trigger_kind",
	"status", "created_at", "updated_at",
}

// ProcessRepo implements process.Repository on postgres.
type ProcessRepo struct {
	db DB
}

func NewProcessRepo(db DB) *ProcessRepo {
	return &ProcessRepo{db: db}
}

func (r *ProcessRepo) Create(ctx context.Context, p *process.Process) (*process.Process, error) {
	query, args, err := sq.Insert("processes").
		Columns("agent_id", "name", "description", "auto_start", "trigger_kind", "status").
		Values(p.AgentID, p.Name, p.Description, p.AutoStart, p.TriggerKind, p.Status).
		Suffix("RETURNING " + columnList(processColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("process", err)
	}
	var created process.Process
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("process", err)
	}
	return &created, nil
}

func (r *ProcessRepo) Get(ctx context.Context, id core.ID) (*process.Process, error) {
	query, args, err := sq.Select(processColumns...).
		From("processes").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("process", err)
	}
	var p process.Process
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		return nil, wrapGetErr("process", fmt.Sprintf("process %s not found", id), err)
	}
	return &p, nil
}

func (r *ProcessRepo) List(ctx context.Context, filter process.Filter, page core.PageQuery) ([]*process.Process, error) {
	page = page.Normalize()
	builder := sq.Select(processColumns...).
		From("processes").
		OrderBy("id").
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit)).
		PlaceholderFormat(sq.Dollar)
	if filter.AgentID != nil {
		builder = builder.Where(sq.Eq{"agent_id": *filter.AgentID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, core.StorageFailure("process", err)
	}
	processes := []*process.Process{}
	if err := pgxscan.Select(ctx, r.db, &processes, query, args...); err != nil {
		return nil, core.StorageFailure("process", err)
	}
	return processes, nil
}

func (r *ProcessRepo) Update(ctx context.Context, p *process.Process) (*process.Process, error) {
	query, args, err := sq.Update("processes").
		Set("agent_id", p.AgentID).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("auto_start", p.AutoStart).
		Set("trigger_kind", p.TriggerKind).
		Set("status", p.Status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + columnList(processColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("process", err)
	}
	var updated process.Process
	if err := pgxscan.Get(ctx, r.db, &updated, query, args...); err != nil {
		return nil, wrapGetErr("process", fmt.Sprintf("process %s not found", p.ID), err)
	}
	return &updated, nil
}

func (r *ProcessRepo) Delete(ctx context.Context, id core.ID) (*process.Process, error) {
	query, args, err := sq.Delete("processes").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(processColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("process", err)
	}
	var deleted process.Process
	if err := pgxscan.Get(ctx, r.db, &deleted, query, args...); err != nil {
		return nil, wrapGetErr("process", fmt.Sprintf("process %s not found", id), err)
	}
	return &deleted, nil
}

func (r *ProcessRepo) CountByAgent(ctx context.Context, agentID core.ID) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("processes").
		Where(sq.Eq{"agent_id": agentID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, core.StorageFailure("process", err)
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, core.StorageFailure("process", err)
	}
	return count, nil
}
