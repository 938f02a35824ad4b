package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/core"
)

var agentColumns = []string{
	"id", "name", "code", "kind", "enabled", "updates_available",
	"created_at", "updated_at",
}

// AgentRepo implements agent.Repository on postgres.
type AgentRepo struct {
	db DB
}

func NewAgentRepo(db DB) *AgentRepo {
	return &AgentRepo{db: db}
}

func (r *AgentRepo) Create(ctx context.Context, a *agent.Agent) (*agent.Agent, error) {
	query, args, err := sq.Insert("agents").
		Columns("name", "code", "kind", "enabled", "updates_available").
		Values(a.Name, a.Code, a.Kind, a.Enabled, a.UpdatesAvailable).
		Suffix("RETURNING " + columnList(agentColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("agent", err)
	}
	var created agent.Agent
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("agent", err)
	}
	return &created, nil
}

func (r *AgentRepo) Get(ctx context.Context, id core.ID) (*agent.Agent, error) {
	query, args, err := sq.Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("agent", err)
	}
	var a agent.Agent
	if err := pgxscan.Get(ctx, r.db, &a, query, args...); err != nil {
		return nil, wrapGetErr("agent", fmt.Sprintf("agent %s not found", id), err)
	}
	return &a, nil
}

func (r *AgentRepo) List(ctx context.Context, page core.PageQuery) ([]*agent.Agent, error) {
	page = page.Normalize()
	query, args, err := sq.Select(agentColumns...).
		From("agents").
		OrderBy("id").
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("agent", err)
	}
	agents := []*agent.Agent{}
	if err := pgxscan.Select(ctx, r.db, &agents, query, args...); err != nil {
		return nil, core.StorageFailure("agent", err)
	}
	return agents, nil
}

func (r *AgentRepo) Update(ctx context.Context, a *agent.Agent) (*agent.Agent, error) {
	query, args, err := sq.Update("agents").
		Set("name", a.Name).
		Set("code", a.Code).
		Set("kind", a.Kind).
		Set("enabled", a.Enabled).
		Set("updates_available", a.UpdatesAvailable).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": a.ID}).
		Suffix("RETURNING " + columnList(agentColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("agent", err)
	}
	var updated agent.Agent
	if err := pgxscan.Get(ctx, r.db, &updated, query, args...); err != nil {
		return nil, wrapGetErr("agent", fmt.Sprintf("agent %s not found", a.ID), err)
	}
	return &updated, nil
}

func (r *AgentRepo) Delete(ctx context.Context, id core.ID) (*agent.Agent, error) {
	query, args, err := sq.Delete("agents").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(agentColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("agent", err)
	}
	var deleted agent.Agent
	if err := pgxscan.Get(ctx, r.db, &deleted, query, args...); err != nil {
		return nil, wrapGetErr("agent", fmt.Sprintf("agent %s not found", id), err)
	}
	return &deleted, nil
}
