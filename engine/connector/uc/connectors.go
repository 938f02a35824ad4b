package uc

import (
	"context"
	"fmt"
	"time"

	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/pkg/logger"
)

// Input carries the candidate fields for a connector; creates and updates
// share the same shape. Only the attribute subset matching Kind is
// validated; the rest is ignored.
type Input struct {
	TaskID   core.ID        `json:"task_id"`
	DataType string         `json:"data_type"`
	Kind     connector.Kind `json:"kind"`

	FromEmail string `json:"from_email"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`

	ServiceKind connector.ServiceKind `json:"service_kind"`
	Endpoint    string                `json:"endpoint"`
	ResponseTag string                `json:"response_tag"`

	DatabaseKind     connector.DatabaseKind `json:"database_kind"`
	ConnectionString string                 `json:"connection_string"`
	QueryKind        connector.QueryKind    `json:"query_kind"`
	Query            string                 `json:"query"`

	QueuePath string `json:"queue_path"`
}

func (in *Input) toModel() *connector.Connector {
	return &connector.Connector{
		TaskID:           in.TaskID,
		DataType:         in.DataType,
		Kind:             in.Kind,
		FromEmail:        in.FromEmail,
		Email:            in.Email,
		Subject:          in.Subject,
		ServiceKind:      in.ServiceKind,
		Endpoint:         in.Endpoint,
		ResponseTag:      in.ResponseTag,
		DatabaseKind:     in.DatabaseKind,
		ConnectionString: in.ConnectionString,
		QueryKind:        in.QueryKind,
		Query:            in.Query,
		QueuePath:        in.QueuePath,
	}
}

// Create validates and stores a new connector under an existing task.
type Create struct {
	repo  connector.Repository
	tasks task.Repository
	input *Input
}

func NewCreate(repo connector.Repository, tasks task.Repository, input *Input) *Create {
	return &Create{repo: repo, tasks: tasks, input: input}
}

func (uc *Create) Execute(ctx context.Context) (*connector.Connector, error) {
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
		return nil, fmt.Errorf("creating connector: %w", err)
	}
	logger.FromContext(ctx).Info("connector created",
		"connector_id", stored.ID, "task_id", stored.TaskID, "kind", stored.Kind)
	return stored, nil
}

// Get retrieves one connector by id.
type Get struct {
	repo connector.Repository
	id   core.ID
}

func NewGet(repo connector.Repository, id core.ID) *Get {
	return &Get{repo: repo, id: id}
}

func (uc *Get) Execute(ctx context.Context) (*connector.Connector, error) {
	return uc.repo.Get(ctx, uc.id)
}

// List returns connectors in creation order, optionally filtered by task.
type List struct {
	repo   connector.Repository
	filter connector.Filter
	page   core.PageQuery
}

func NewList(repo connector.Repository, filter connector.Filter, page core.PageQuery) *List {
	return &List{repo: repo, filter: filter, page: page}
}

func (uc *List) Execute(ctx context.Context) ([]*connector.Connector, error) {
	return uc.repo.List(ctx, uc.filter, uc.page.Normalize())
}

// Update validates and stores a full replacement of a connector.
type Update struct {
	repo  connector.Repository
	tasks task.Repository
	id    core.ID
	input *Input
}

func NewUpdate(repo connector.Repository, tasks task.Repository, id core.ID, input *Input) *Update {
	return &Update{repo: repo, tasks: tasks, id: id, input: input}
}

func (uc *Update) Execute(ctx context.Context) (*connector.Connector, error) {
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

// Delete removes a connector.
type Delete struct {
	repo connector.Repository
	id   core.ID
}

func NewDelete(repo connector.Repository, id core.ID) *Delete {
	return &Delete{repo: repo, id: id}
}

func (uc *Delete) Execute(ctx context.Context) (*connector.Connector, error) {
	deleted, err := uc.repo.Delete(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("connector deleted", "connector_id", deleted.ID)
	return deleted, nil
}
