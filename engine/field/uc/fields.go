package uc

import (
	"context"
	"fmt"
	"time"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/pkg/logger"
)

// Input carries the candidate fields for a field; creates and updates share
// the same shape.
type Input struct {
	TaskID   core.ID        `json:"task_id"`
	Key      string         `json:"key"`
	DataType field.DataType `json:"data_type"`
	Value    string         `json:"value"`
}

func (in *Input) toModel() *field.Field {
	return &field.Field{
		TaskID:   in.TaskID,
		Key:      in.Key,
		DataType: in.DataType,
		Value:    in.Value,
	}
}

// Create validates and stores a new field under an existing task.
type Create struct {
	repo  field.Repository
	tasks task.Repository
	input *Input
}

func NewCreate(repo field.Repository, tasks task.Repository, input *Input) *Create {
	return &Create{repo: repo, tasks: tasks, input: input}
}

func (uc *Create) Execute(ctx context.Context) (*field.Field, error) {
	candidate := uc.input.toModel()
	now := time.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.tasks.Get(ctx, candidate.TaskID); err != nil {
		return nil, err
	}
	stored, err := uc.repo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("creating field: %w", err)
	}
	logger.FromContext(ctx).Info("field created", "field_id", stored.ID, "task_id", stored.TaskID, "key", stored.Key)
	return stored, nil
}

// CreateBatch validates and stores several fields under one task in a
// single transaction. The path's task id is authoritative: any body entry
// naming a different task is rejected before any write.
type CreateBatch struct {
	repo   field.Repository
	tasks  task.Repository
	taskID core.ID
	inputs []*Input
}

func NewCreateBatch(repo field.Repository, tasks task.Repository, taskID core.ID, inputs []*Input) *CreateBatch {
	return &CreateBatch{repo: repo, tasks: tasks, taskID: taskID, inputs: inputs}
}

func (uc *CreateBatch) Execute(ctx context.Context) ([]*field.Field, error) {
	if len(uc.inputs) == 0 {
		return nil, core.Invalidf("field", "batch create requires at least one field")
	}
	if _, err := uc.tasks.Get(ctx, uc.taskID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	candidates := make([]*field.Field, 0, len(uc.inputs))
	for _, in := range uc.inputs {
		if !in.TaskID.IsZero() && in.TaskID != uc.taskID {
			return nil, core.Invalidf("field", "task id mismatch between path and body: %s vs %s", uc.taskID, in.TaskID)
		}
		candidate := in.toModel()
		candidate.TaskID = uc.taskID
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	stored, err := uc.repo.CreateBatch(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("creating fields: %w", err)
	}
	logger.FromContext(ctx).Info("fields created", "task_id", uc.taskID, "count", len(stored))
	return stored, nil
}

// Get retrieves one field by id.
type Get struct {
	repo field.Repository
	id   core.ID
}

func NewGet(repo field.Repository, id core.ID) *Get {
	return &Get{repo: repo, id: id}
}

func (uc *Get) Execute(ctx context.Context) (*field.Field, error) {
	return uc.repo.Get(ctx, uc.id)
}

// List returns fields in creation order, optionally filtered by task.
type List struct {
	repo   field.Repository
	filter field.Filter
	page   core.PageQuery
}

func NewList(repo field.Repository, filter field.Filter, page core.PageQuery) *List {
	return &List{repo: repo, filter: filter, page: page}
}

func (uc *List) Execute(ctx context.Context) ([]*field.Field, error) {
	return uc.repo.List(ctx, uc.filter, uc.page.Normalize())
}

// Update validates and stores a full replacement of a field.
type Update struct {
	repo  field.Repository
	tasks task.Repository
	id    core.ID
	input *Input
}

func NewUpdate(repo field.Repository, tasks task.Repository, id core.ID, input *Input) *Update {
	return &Update{repo: repo, tasks: tasks, id: id, input: input}
}

func (uc *Update) Execute(ctx context.Context) (*field.Field, error) {
	existing, err := uc.repo.Get(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	candidate := uc.input.toModel()
	candidate.ID = existing.ID
	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = time.Now().UTC()
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if candidate.TaskID != existing.TaskID {
		if _, err := uc.tasks.Get(ctx, candidate.TaskID); err != nil {
			return nil, err
		}
	}
	return uc.repo.Update(ctx, candidate)
}

// Delete removes a field.
type Delete struct {
	repo field.Repository
	id   core.ID
}

func NewDelete(repo field.Repository, id core.ID) *Delete {
	return &Delete{repo: repo, id: id}
}

func (uc *Delete) Execute(ctx context.Context) (*field.Field, error) {
	deleted, err := uc.repo.Delete(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("field deleted", "field_id", deleted.ID)
	return deleted, nil
}
