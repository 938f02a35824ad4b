package uc

import (
	"context"
	"fmt"
	"time"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/engine/schedule"
	"github.com/integraph/integraph/pkg/logger"
)

// Input carries the candidate fields for a schedule; creates and updates
// share the same shape.
type Input struct {
	ProcessID       core.ID             `json:"process_id"`
	Recurrence      schedule.Recurrence `json:"recurrence"`
	StartDate       time.Time           `json:"start_date"`
	Enabled         bool                `json:"enabled"`
	IntervalMinutes int                 `json:"interval_minutes"`
	DayOfWeek       int                 `json:"day_of_week"`
	DayOfMonth      int                 `json:"day_of_month"`
	Month           int                 `json:"month"`
	Hour            int                 `json:"hour"`
	Minute          int                 `json:"minute"`
}

func (in *Input) toModel() *schedule.Schedule {
	return &schedule.Schedule{
		ProcessID:       in.ProcessID,
		Recurrence:      in.Recurrence,
		StartDate:       in.StartDate,
		Enabled:         in.Enabled,
		IntervalMinutes: in.IntervalMinutes,
		DayOfWeek:       in.DayOfWeek,
		DayOfMonth:      in.DayOfMonth,
		Month:           in.Month,
		Hour:            in.Hour,
		Minute:          in.Minute,
	}
}

// Create validates and stores a schedule for a process that has none yet.
type Create struct {
	repo      schedule.Repository
	processes process.Repository
	input     *Input
}

func NewCreate(repo schedule.Repository, processes process.Repository, input *Input) *Create {
	return &Create{repo: repo, processes: processes, input: input}
}

func (uc *Create) Execute(ctx context.Context) (*schedule.Schedule, error) {
	candidate := uc.input.toModel()
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.processes.Get(ctx, candidate.ProcessID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByProcess(ctx, candidate.ProcessID)
	if err != nil && !core.IsNotFound(err) {
		return nil, fmt.Errorf("checking existing schedule: %w", err)
	}
	if existing != nil {
		return nil, core.Conflictf("schedule", "process %s already has schedule %s", candidate.ProcessID, existing.ID)
	}
	stored, err := uc.repo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("creating schedule: %w", err)
	}
	logger.FromContext(ctx).Info("schedule created",
		"schedule_id", stored.ID, "process_id", stored.ProcessID, "recurrence", stored.Recurrence)
	return stored, nil
}

// Get retrieves one schedule by id.
type Get struct {
	repo schedule.Repository
	id   core.ID
}

func NewGet(repo schedule.Repository, id core.ID) *Get {
	return &Get{repo: repo, id: id}
}

func (uc *Get) Execute(ctx context.Context) (*schedule.Schedule, error) {
	return uc.repo.Get(ctx, uc.id)
}

// List returns schedules, optionally filtered by process.
type List struct {
	repo   schedule.Repository
	filter schedule.Filter
	page   core.PageQuery
}

func NewList(repo schedule.Repository, filter schedule.Filter, page core.PageQuery) *List {
	return &List{repo: repo, filter: filter, page: page}
}

func (uc *List) Execute(ctx context.Context) ([]*schedule.Schedule, error) {
	return uc.repo.List(ctx, uc.filter, uc.page.Normalize())
}

// Update validates and stores a full replacement of a schedule. Moving a
// schedule to another process is subject to the same one-per-process rule.
type Update struct {
	repo      schedule.Repository
	processes process.Repository
	id        core.ID
	input     *Input
}

func NewUpdate(repo schedule.Repository, processes process.Repository, id core.ID, input *Input) *Update {
	return &Update{repo: repo, processes: processes, id: id, input: input}
}

func (uc *Update) Execute(ctx context.Context) (*schedule.Schedule, error) {
	existing, err := uc.repo.Get(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	candidate := uc.input.toModel()
	candidate.ID = existing.ID
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if candidate.ProcessID != existing.ProcessID {
		if _, err := uc.processes.Get(ctx, candidate.ProcessID); err != nil {
			return nil, err
		}
		other, err := uc.repo.GetByProcess(ctx, candidate.ProcessID)
		if err != nil && !core.IsNotFound(err) {
			return nil, fmt.Errorf("checking existing schedule: %w", err)
		}
		if other != nil {
			return nil, core.Conflictf("schedule", "process %s already has schedule %s", candidate.ProcessID, other.ID)
		}
	}
	return uc.repo.Update(ctx, candidate)
}

// Delete removes a schedule.
type Delete struct {
	repo schedule.Repository
	id   core.ID
}

func NewDelete(repo schedule.Repository, id core.ID) *Delete {
	return &Delete{repo: repo, id: id}
}

func (uc *Delete) Execute(ctx context.Context) (*schedule.Schedule, error) {
	deleted, err := uc.repo.Delete(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("schedule deleted", "schedule_id", deleted.ID)
	return deleted, nil
}
