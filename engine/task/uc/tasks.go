package uc

import (
	"context"
	"fmt"
	"time"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/pkg/logger"
)

// Input carries the candidate fields for a task; creates and updates share
// the same shape. Payloads not matching Kind are ignored.
type Input struct {
	ProcessID      core.ID             `json:"process_id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Kind           task.Kind           `json:"kind"`
	SequenceNumber int                 `json:"sequence_number"`
	Enabled        *bool               `json:"enabled"`
	InputPayload   *task.InputPayload  `json:"input"`
	OutputPayload  *task.OutputPayload `json:"output"`
	LogicPayload   *task.LogicPayload  `json:"logic"`
}

func (in *Input) toModel() *task.Task {
	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	t := &task.Task{
		ProcessID:      in.ProcessID,
		Name:           in.Name,
		Description:    in.Description,
		Kind:           in.Kind,
		SequenceNumber: in.SequenceNumber,
		Enabled:        enabled,
		Input:          in.InputPayload,
		Output:         in.OutputPayload,
		Logic:          in.LogicPayload,
	}
	t.Normalize()
	return t
}

// Create validates and stores a new task under an existing process.
type Create struct {
	repo      task.Repository
	processes process.Repository
	input     *Input
}

func NewCreate(repo task.Repository, processes process.Repository, input *Input) *Create {
	return &Create{repo: repo, processes: processes, input: input}
}

func (uc *Create) Execute(ctx context.Context) (*task.Task, error) {
	candidate := uc.input.toModel()
	now := time.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.processes.Get(ctx, candidate.ProcessID); err != nil {
		return nil, err
	}
	stored, err := uc.repo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	logger.FromContext(ctx).Info("task created",
		"task_id", stored.ID, "process_id", stored.ProcessID, "kind", stored.Kind, "sequence", stored.SequenceNumber)
	return stored, nil
}

// Get retrieves one task by id.
type Get struct {
	repo task.Repository
	id   core.ID
}

func NewGet(repo task.Repository, id core.ID) *Get {
	return &Get{repo: repo, id: id}
}

func (uc *Get) Execute(ctx context.Context) (*task.Task, error) {
	return uc.repo.Get(ctx, uc.id)
}

// List returns tasks in sequence order, optionally filtered by process.
type List struct {
	repo   task.Repository
	filter task.Filter
	page   core.PageQuery
}

func NewList(repo task.Repository, filter task.Filter, page core.PageQuery) *List {
	return &List{repo: repo, filter: filter, page: page}
}

func (uc *List) Execute(ctx context.Context) ([]*task.Task, error) {
	return uc.repo.List(ctx, uc.filter, uc.page.Normalize())
}

// Update validates and stores a full replacement of a task.
type Update struct {
	repo      task.Repository
	processes process.Repository
	id        core.ID
	input     *Input
}

func NewUpdate(repo task.Repository, processes process.Repository, id core.ID, input *Input) *Update {
	return &Update{repo: repo, processes: processes, id: id, input: input}
}

func (uc *Update) Execute(ctx context.Context) (*task.Task, error) {
	existing, err := uc.repo.Get(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	candidate := uc.input.toModel()
	candidate.ID = existing.ID
	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = time.Now().UTC()
	if candidate.SequenceNumber == 0 {
		candidate.SequenceNumber = existing.SequenceNumber
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if candidate.ProcessID != existing.ProcessID {
		if _, err := uc.processes.Get(ctx, candidate.ProcessID); err != nil {
			return nil, err
		}
	}
	return uc.repo.Update(ctx, candidate)
}

// Delete removes a task together with its fields, connectors, and
// transformations.
type Delete struct {
	repo task.Repository
	id   core.ID
}

func NewDelete(repo task.Repository, id core.ID) *Delete {
	return &Delete{repo: repo, id: id}
}

func (uc *Delete) Execute(ctx context.Context) (*task.Task, error) {
	deleted, err := uc.repo.Delete(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("task deleted", "task_id", deleted.ID, "process_id", deleted.ProcessID)
	return deleted, nil
}

// Reorder reassigns sequence numbers to a process's tasks following the
// caller-supplied order.
type Reorder struct {
	repo       task.Repository
	processes  process.Repository
	processID  core.ID
	orderedIDs []core.ID
}

func NewReorder(repo task.Repository, processes process.Repository, processID core.ID, orderedIDs []core.ID) *Reorder {
	return &Reorder{repo: repo, processes: processes, processID: processID, orderedIDs: orderedIDs}
}

func (uc *Reorder) Execute(ctx context.Context) ([]*task.Task, error) {
	if len(uc.orderedIDs) == 0 {
		return nil, core.Invalidf("task", "reorder requires at least one task id")
	}
	if _, err := uc.processes.Get(ctx, uc.processID); err != nil {
		return nil, err
	}
	ordered := make([]*task.Task, 0, len(uc.orderedIDs))
	for _, id := range uc.orderedIDs {
		t, err := uc.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, t)
	}
	assignments, err := task.PlanResequence(uc.processID, ordered)
	if err != nil {
		return nil, err
	}
	resequenced, err := uc.repo.Resequence(ctx, assignments)
	if err != nil {
		return nil, fmt.Errorf("resequencing tasks: %w", err)
	}
	logger.FromContext(ctx).Info("tasks resequenced", "process_id", uc.processID, "count", len(resequenced))
	return resequenced, nil
}
