package uc

import (
	"context"
	"fmt"
	"time"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/engine/transformation"
	"github.com/integraph/integraph/pkg/logger"
)

// Input carries the candidate fields for a transformation; creates and
// updates share the same shape.
type Input struct {
	TaskID           core.ID                      `json:"task_id"`
	ConditionFieldID core.ID                      `json:"condition_field_id"`
	ValueFieldID     core.ID                      `json:"value_field_id"`
	ConditionKind    transformation.ConditionKind `json:"condition_kind"`
}

func (in *Input) toModel() *transformation.Transformation {
	return &transformation.Transformation{
		TaskID:           in.TaskID,
		ConditionFieldID: in.ConditionFieldID,
		ValueFieldID:     in.ValueFieldID,
		ConditionKind:    in.ConditionKind,
	}
}

// checkReferences resolves the task and both fields and enforces the
// same-task ownership rule: a transformation may only relate fields of its
// own task.
func checkReferences(
	ctx context.Context,
	tasks task.Repository,
	fields field.Repository,
	candidate *transformation.Transformation,
) error {
	if _, err := tasks.Get(ctx, candidate.TaskID); err != nil {
		return err
	}
	for name, fieldID := range map[string]core.ID{
		"condition_field_id": candidate.ConditionFieldID,
		"value_field_id":     candidate.ValueFieldID,
	} {
		f, err := fields.Get(ctx, fieldID)
		if err != nil {
			return err
		}
		if f.TaskID != candidate.TaskID {
			return core.Invalidf("transformation",
				"%s %s belongs to task %s, not %s", name, fieldID, f.TaskID, candidate.TaskID)
		}
	}
	return nil
}

// Create validates and stores a new transformation under an existing task.
type Create struct {
	repo   transformation.Repository
	tasks  task.Repository
	fields field.Repository
	input  *Input
}

func NewCreate(
	repo transformation.Repository,
	tasks task.Repository,
	fields field.Repository,
	input *Input,
) *Create {
	return &Create{repo: repo, tasks: tasks, fields: fields, input: input}
}

func (uc *Create) Execute(ctx context.Context) (*transformation.Transformation, error) {
	candidate := uc.input.toModel()
	now := time.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, uc.tasks, uc.fields, candidate); err != nil {
		return nil, err
	}
	stored, err := uc.repo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("creating transformation: %w", err)
	}
	logger.FromContext(ctx).Info("transformation created",
		"transformation_id", stored.ID, "task_id", stored.TaskID)
	return stored, nil
}

// CreateBatch validates and stores several transformations under one task
// in a single transaction. The path's task id is authoritative: any body
// entry naming a different task is rejected before any write.
type CreateBatch struct {
	repo   transformation.Repository
	tasks  task.Repository
	fields field.Repository
	taskID core.ID
	inputs []*Input
}

func NewCreateBatch(
	repo transformation.Repository,
	tasks task.Repository,
	fields field.Repository,
	taskID core.ID,
	inputs []*Input,
) *CreateBatch {
	return &CreateBatch{repo: repo, tasks: tasks, fields: fields, taskID: taskID, inputs: inputs}
}

func (uc *CreateBatch) Execute(ctx context.Context) ([]*transformation.Transformation, error) {
	if len(uc.inputs) == 0 {
		return nil, core.Invalidf("transformation", "batch create requires at least one transformation")
	}
	now := time.Now().UTC()
	candidates := make([]*transformation.Transformation, 0, len(uc.inputs))
	for _, in := range uc.inputs {
		if !in.TaskID.IsZero() && in.TaskID != uc.taskID {
			return nil, core.Invalidf("transformation",
				"task id mismatch between path and body: %s vs %s", uc.taskID, in.TaskID)
		}
		candidate := in.toModel()
		candidate.TaskID = uc.taskID
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if err := checkReferences(ctx, uc.tasks, uc.fields, candidate); err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	stored, err := uc.repo.CreateBatch(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("creating transformations: %w", err)
	}
	logger.FromContext(ctx).Info("transformations created", "task_id", uc.taskID, "count", len(stored))
	return stored, nil
}

// Get retrieves one transformation by id.
type Get struct {
	repo transformation.Repository
	id   core.ID
}

func NewGet(repo transformation.Repository, id core.ID) *Get {
	return &Get{repo: repo, id: id}
}

func (uc *Get) Execute(ctx context.Context) (*transformation.Transformation, error) {
	return uc.repo.Get(ctx, uc.id)
}

// List returns transformations in creation order, optionally filtered by
// task.
type List struct {
	repo   transformation.Repository
	filter transformation.Filter
	page   core.PageQuery
}

func NewList(repo transformation.Repository, filter transformation.Filter, page core.PageQuery) *List {
	return &List{repo: repo, filter: filter, page: page}
}

func (uc *List) Execute(ctx context.Context) ([]*transformation.Transformation, error) {
	return uc.repo.List(ctx, uc.filter, uc.page.Normalize())
}

// Update validates and stores a full replacement of a transformation.
type Update struct {
	repo   transformation.Repository
	tasks  task.Repository
	fields field.Repository
	id     core.ID
	input  *Input
}

func NewUpdate(
	repo transformation.Repository,
	tasks task.Repository,
	fields field.Repository,
	id core.ID,
	input *Input,
) *Update {
	return &Update{repo: repo, tasks: tasks, fields: fields, id: id, input: input}
}

func (uc *Update) Execute(ctx context.Context) (*transformation.Transformation, error) {
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
	if err := checkReferences(ctx, uc.tasks, uc.fields, candidate); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, candidate)
}

// Delete removes a transformation.
type Delete struct {
	repo transformation.Repository
	id   core.ID
}

func NewDelete(repo transformation.Repository, id core.ID) *Delete {
	return &Delete{repo: repo, id: id}
}

func (uc *Delete) Execute(ctx context.Context) (*transformation.Transformation, error) {
	deleted, err := uc.repo.Delete(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("transformation deleted", "transformation_id", deleted.ID)
	return deleted, nil
}
