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

// CreateInput carries the candidate fields for a new process. Status is not
// accepted here; every process starts Stopped.
type CreateInput struct {
	AgentID     core.ID             `json:"agent_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	AutoStart   bool                `json:"auto_start"`
	TriggerKind process.TriggerKind `json:"trigger_kind"`
}

// Create validates and stores a new process under an existing agent.
type Create struct {
	repo   process.Repository
	agents agent.Repository
	input  *CreateInput
}

func NewCreate(repo process.Repository, agents agent.Repository, input *CreateInput) *Create {
	return &Create{repo: repo, agents: agents, input: input}
}

func (uc *Create) Execute(ctx context.Context) (*process.Process, error) {
	now := time.Now().UTC()
	candidate := &process.Process{
		AgentID:     uc.input.AgentID,
		Name:        uc.input.Name,
		Description: uc.input.Description,
		AutoStart:   uc.input.AutoStart,
		TriggerKind: uc.input.TriggerKind,
		Status:      process.StatusStopped,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.agents.Get(ctx, candidate.AgentID); err != nil {
		return nil, err
	}
	stored, err := uc.repo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("creating process: %w", err)
	}
	logger.FromContext(ctx).Info("process created", "process_id", stored.ID, "agent_id", stored.AgentID)
	return stored, nil
}

// Get retrieves one process by id.
type Get struct {
	repo process.Repository
	id   core.ID
}

func NewGet(repo process.Repository, id core.ID) *Get {
	return &Get{repo: repo, id: id}
}

func (uc *Get) Execute(ctx context.Context) (*process.Process, error) {
	return uc.repo.Get(ctx, uc.id)
}

// List returns processes in creation order, optionally filtered by agent.
type List struct {
	repo   process.Repository
	filter process.Filter
	page   core.PageQuery
}

func NewList(repo process.Repository, filter process.Filter, page core.PageQuery) *List {
	return &List{repo: repo, filter: filter, page: page}
}

func (uc *List) Execute(ctx context.Context) ([]*process.Process, error) {
	return uc.repo.List(ctx, uc.filter, uc.page.Normalize())
}

// UpdateInput carries the replacement fields for an existing process. The
// run status is deliberately absent: it moves only through Start and Stop.
type UpdateInput struct {
	AgentID     core.ID             `json:"agent_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	AutoStart   bool                `json:"auto_start"`
	TriggerKind process.TriggerKind `json:"trigger_kind"`
}

// Update validates and stores a full replacement of a process.
type Update struct {
	repo   process.Repository
	agents agent.Repository
	id     core.ID
	input  *UpdateInput
}

func NewUpdate(repo process.Repository, agents agent.Repository, id core.ID, input *UpdateInput) *Update {
	return &Update{repo: repo, agents: agents, id: id, input: input}
}

func (uc *Update) Execute(ctx context.Context) (*process.Process, error) {
	existing, err := uc.repo.Get(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	candidate := &process.Process{
		ID:          existing.ID,
		AgentID:     uc.input.AgentID,
		Name:        uc.input.Name,
		Description: uc.input.Description,
		AutoStart:   uc.input.AutoStart,
		TriggerKind: uc.input.TriggerKind,
		Status:      existing.Status,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if candidate.AgentID != existing.AgentID {
		if _, err := uc.agents.Get(ctx, candidate.AgentID); err != nil {
			return nil, err
		}
	}
	return uc.repo.Update(ctx, candidate)
}

// Delete removes a process.
type Delete struct {
	repo process.Repository
	id   core.ID
}

func NewDelete(repo process.Repository, id core.ID) *Delete {
	return &Delete{repo: repo, id: id}
}

func (uc *Delete) Execute(ctx context.Context) (*process.Process, error) {
	deleted, err := uc.repo.Delete(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("process deleted", "process_id", deleted.ID)
	return deleted, nil
}

// Start moves a process into the Running state.
type Start struct {
	repo process.Repository
	id   core.ID
}

func NewStart(repo process.Repository, id core.ID) *Start {
	return &Start{repo: repo, id: id}
}

func (uc *Start) Execute(ctx context.Context) (*process.Process, error) {
	return transition(ctx, uc.repo, uc.id, (*process.Process).Start, "process started")
}

// Stop moves a process into the Stopped state.
type Stop struct {
	repo process.Repository
	id   core.ID
}

func NewStop(repo process.Repository, id core.ID) *Stop {
	return &Stop{repo: repo, id: id}
}

func (uc *Stop) Execute(ctx context.Context) (*process.Process, error) {
	return transition(ctx, uc.repo, uc.id, (*process.Process).Stop, "process stopped")
}

func transition(
	ctx context.Context,
	repo process.Repository,
	id core.ID,
	move func(*process.Process) error,
	event string,
) (*process.Process, error) {
	existing, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := existing.Status
	if err := move(existing); err != nil {
		return nil, err
	}
	if existing.Status == prev {
		return existing, nil
	}
	existing.UpdatedAt = time.Now().UTC()
	stored, err := repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(event, "process_id", stored.ID, "from", prev, "to", stored.Status)
	return stored, nil
}
