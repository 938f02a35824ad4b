package memory

import (
	"context"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/schedule"
)

type scheduleRepo struct {
	s *Store
}

func cloneSchedule(s *schedule.Schedule) *schedule.Schedule {
	clone := *s
	return &clone
}

func (r *scheduleRepo) Create(_ context.Context, s *schedule.Schedule) (*schedule.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneSchedule(s)
	stored.ID = r.s.newID()
	r.s.schedules[stored.ID] = stored
	return cloneSchedule(stored), nil
}

func (r *scheduleRepo) Get(_ context.Context, id core.ID) (*schedule.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.schedules[id]
	if !ok {
		return nil, core.NotFoundf("schedule", "schedule %s not found", id)
	}
	return cloneSchedule(stored), nil
}

func (r *scheduleRepo) List(
	_ context.Context,
	filter schedule.Filter,
	page core.PageQuery,
) ([]*schedule.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*schedule.Schedule, 0, len(r.s.schedules))
	for _, id := range sortedIDs(r.s.schedules) {
		stored := r.s.schedules[id]
		if filter.ProcessID != nil && stored.ProcessID != *filter.ProcessID {
			continue
		}
		out = append(out, cloneSchedule(stored))
	}
	return paginate(out, page), nil
}

func (r *scheduleRepo) Update(_ context.Context, s *schedule.Schedule) (*schedule.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.schedules[s.ID]; !ok {
		return nil, core.NotFoundf("schedule", "schedule %s not found", s.ID)
	}
	stored := cloneSchedule(s)
	r.s.schedules[stored.ID] = stored
	return cloneSchedule(stored), nil
}

func (r *scheduleRepo) Delete(_ context.Context, id core.ID) (*schedule.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.schedules[id]
	if !ok {
		return nil, core.NotFoundf("schedule", "schedule %s not found", id)
	}
	delete(r.s.schedules, id)
	return stored, nil
}

func (r *scheduleRepo) GetByProcess(_ context.Context, processID core.ID) (*schedule.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedIDs(r.s.schedules) {
		if r.s.schedules[id].ProcessID == processID {
			return cloneSchedule(r.s.schedules[id]), nil
		}
	}
	return nil, core.NotFoundf("schedule", "process %s has no schedule", processID)
}
