package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/schedule"
)

var scheduleColumns = []string{
	"id", "process_id", "recurrence", "start_date", "enabled",
	"interval_minutes", "day_of_week", "day_of_month", "month", "hour", "minute",
}

// ScheduleRepo implements schedule.Repository on postgres. The schedules
// table carries a unique constraint on process_id, so a duplicate insert
// surfaces as a Conflict even when two writers race.
type ScheduleRepo struct {
	db DB
}

func NewScheduleRepo(db DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) Create(ctx context.Context, s *schedule.Schedule) (*schedule.Schedule, error) {
	query, args, err := sq.Insert("schedules").
		Columns("process_id", "recurrence", "start_date", "enabled",
			"interval_minutes", "day_of_week", "day_of_month", "month", "hour", "minute").
		Values(s.ProcessID, s.Recurrence, s.StartDate, s.Enabled,
			s.IntervalMinutes, s.DayOfWeek, s.DayOfMonth, s.Month, s.Hour, s.Minute).
		Suffix("RETURNING " + columnList(scheduleColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("schedule", err)
	}
	var created schedule.Schedule
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("schedule", err)
	}
	return &created, nil
}

func (r *ScheduleRepo) Get(ctx context.Context, id core.ID) (*schedule.Schedule, error) {
	query, args, err := sq.Select(scheduleColumns...).
		From("schedules").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("schedule", err)
	}
	var s schedule.Schedule
	if err := pgxscan.Get(ctx, r.db, &s, query, args...); err != nil {
		return nil, wrapGetErr("schedule", fmt.Sprintf("schedule %s not found", id), err)
	}
	return &s, nil
}

func (r *ScheduleRepo) GetByProcess(ctx context.Context, processID core.ID) (*schedule.Schedule, error) {
	query, args, err := sq.Select(scheduleColumns...).
		From("schedules").
		Where(sq.Eq{"process_id": processID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("schedule", err)
	}
	var s schedule.Schedule
	if err := pgxscan.Get(ctx, r.db, &s, query, args...); err != nil {
		return nil, wrapGetErr("schedule",
			fmt.Sprintf("process %s has no schedule", processID), err)
	}
	return &s, nil
}

func (r *ScheduleRepo) List(ctx context.Context, filter schedule.Filter, page core.PageQuery) ([]*schedule.Schedule, error) {
	page = page.Normalize()
	builder := sq.Select(scheduleColumns...).
		From("schedules").
		OrderBy("id").
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit)).
		PlaceholderFormat(sq.Dollar)
	if filter.ProcessID != nil {
		builder = builder.Where(sq.Eq{"process_id": *filter.ProcessID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, core.StorageFailure("schedule", err)
	}
	schedules := []*schedule.Schedule{}
	if err := pgxscan.Select(ctx, r.db, &schedules, query, args...); err != nil {
		return nil, core.StorageFailure("schedule", err)
	}
	return schedules, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, s *schedule.Schedule) (*schedule.Schedule, error) {
	query, args, err := sq.Update("schedules").
		Set("process_id", s.ProcessID).
		Set("recurrence", s.Recurrence).
		Set("start_date", s.StartDate).
		Set("enabled", s.Enabled).
		Set("interval_minutes", s.IntervalMinutes).
		Set("day_of_week", s.DayOfWeek).
		Set("day_of_month", s.DayOfMonth).
		Set("month", s.Month).
		Set("hour", s.Hour).
		Set("minute", s.Minute).
		Where(sq.Eq{"id": s.ID}).
		Suffix("RETURNING " + columnList(scheduleColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("schedule", err)
	}
	var updated schedule.Schedule
	if err := pgxscan.Get(ctx, r.db, &updated, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, core.NotFoundf("schedule", "schedule %s not found", s.ID)
		}
		return nil, wrapWriteErr("schedule", err)
	}
	return &updated, nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id core.ID) (*schedule.Schedule, error) {
	query, args, err := sq.Delete("schedules").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(scheduleColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("schedule", err)
	}
	var deleted schedule.Schedule
	if err := pgxscan.Get(ctx, r.db, &deleted, query, args...); err != nil {
		return nil, wrapGetErr("schedule", fmt.Sprintf("schedule %s not found", id), err)
	}
	return &deleted, nil
}
