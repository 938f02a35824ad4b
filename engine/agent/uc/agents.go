package uc

import (
	"context"
	"fmt"
	"time"

	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/pkg/logger"
)

// CreateInput carries the candidate fields for a new agent.
type CreateInput struct {
	Name             string     `json:"name"`
	Code             string     `json:"code"`
	Kind             agent.Kind `json:"kind"`
	Enabled          *bool      `json:"enabled"`
	UpdatesAvailable bool       `json:"updates_available"`
}

// Create validates and stores a new agent.
type Create struct {
	repo  agent.Repository
	input *CreateInput
}

func NewCreate(repo agent.Repository, input *CreateInput) *Create {
	return &Create{repo: repo, input: input}
}

func (uc *Create) Execute(ctx context.Context) (*agent.Agent, error) {
	enabled := true
	if uc.input.Enabled != nil {
		enabled = *uc.input.Enabled
	}
	now := time.Now().UTC()
	candidate := &agent.Agent{
		Name:             uc.input.Name,
		Code:             uc.input.Code,
		Kind:             uc.input.Kind,
		Enabled:          enabled,
		UpdatesAvailable: uc.input.UpdatesAvailable,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	stored, err := uc.repo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}
	logger.FromContext(ctx).Info("agent created", "agent_id", stored.ID, "code", stored.Code)
	return stored, nil
}

// Get retrieves one agent by id.
type Get struct {
	repo agent.Repository
	id   core.ID
}

func NewGet(repo agent.Repository, id core.ID) *Get {
	return &Get{repo: repo, id: id}
}

func (uc *Get) Execute(ctx context.Context) (*agent.Agent, error) {
	return uc.repo.Get(ctx, uc.id)
}

// List returns agents in creation order.
type List struct {
	repo agent.Repository
	page core.PageQuery
}

func NewList(repo agent.Repository, page core.PageQuery) *List {
	return &List{repo: repo, page: page}
}

func (uc *List) Execute(ctx context.Context) ([]*agent.Agent, error) {
	return uc.repo.List(ctx, uc.page.Normalize())
}

// UpdateInput carries the replacement fields for an existing agent.
type UpdateInput struct {
	Name             string     `json:"name"`
	Code             string     `json:"code"`
	Kind             agent.Kind `json:"kind"`
	Enabled          *bool      `json:"enabled"`
	UpdatesAvailable bool       `json:"updates_available"`
}

// Update validates and stores a full replacement of an agent.
type Update struct {
	repo  agent.Repository
	id    core.ID
	input *UpdateInput
}

func NewUpdate(repo agent.Repository, id core.ID, input *UpdateInput) *Update {
	return &Update{repo: repo, id: id, input: input}
}

func (uc *Update) Execute(ctx context.Context) (*agent.Agent, error) {
	existing, err := uc.repo.Get(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	enabled := existing.Enabled
	if uc.input.Enabled != nil {
		enabled = *uc.input.Enabled
	}
	candidate := &agent.Agent{
		ID:               existing.ID,
		Name:             uc.input.Name,
		Code:             uc.input.Code,
		Kind:             uc.input.Kind,
		Enabled:          enabled,
		UpdatesAvailable: uc.input.UpdatesAvailable,
		CreatedAt:        existing.CreatedAt,
		UpdatedAt:        time.Now().UTC(),
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, candidate)
}

// Delete removes an agent. Deletion is rejected while the agent still owns
// processes so no process is ever orphaned.
type Delete struct {
	repo      agent.Repository
	processes process.Repository
	id        core.ID
}

func NewDelete(repo agent.Repository, processes process.Repository, id core.ID) *Delete {
	return &Delete{repo: repo, processes: processes, id: id}
}

func (uc *Delete) Execute(ctx context.Context) (*agent.Agent, error) {
	if _, err := uc.repo.Get(ctx, uc.id); err != nil {
		return nil, err
	}
	count, err := uc.processes.CountByAgent(ctx, uc.id)
	if err != nil {
		return nil, fmt.Errorf("counting processes for agent %s: %w", uc.id, err)
	}
	if count > 0 {
		return nil, core.Conflictf("agent", "agent %s still owns %d process(es)", uc.id, count)
	}
	deleted, err := uc.repo.Delete(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("agent deleted", "agent_id", deleted.ID)
	return deleted, nil
}
