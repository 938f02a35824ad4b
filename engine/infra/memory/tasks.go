package memory

import (
	"context"
	"sort"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/task"
)

type taskRepo struct {
	s *Store
}

func cloneTask(t *task.Task) *task.Task {
	clone := *t
	if t.Input != nil {
		payload := *t.Input
		clone.Input = &payload
	}
	if t.Output != nil {
		payload := *t.Output
		clone.Output = &payload
	}
	if t.Logic != nil {
		payload := *t.Logic
		clone.Logic = &payload
	}
	return &clone
}

func (r *taskRepo) Create(_ context.Context, t *task.Task) (*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneTask(t)
	stored.ID = r.s.newID()
	if stored.SequenceNumber == 0 {
		maxSeq := 0
		for _, other := range r.s.tasks {
			if other.ProcessID == stored.ProcessID && other.SequenceNumber > maxSeq {
				maxSeq = other.SequenceNumber
			}
		}
		stored.SequenceNumber = maxSeq + task.SequenceSpacing
	}
	r.s.tasks[stored.ID] = stored
	return cloneTask(stored), nil
}

func (r *taskRepo) Get(_ context.Context, id core.ID) (*task.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.tasks[id]
	if !ok {
		return nil, core.NotFoundf("task", "task %s not found", id)
	}
	return cloneTask(stored), nil
}

func (r *taskRepo) List(_ context.Context, filter task.Filter, page core.PageQuery) ([]*task.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*task.Task, 0, len(r.s.tasks))
	for _, id := range sortedIDs(r.s.tasks) {
		stored := r.s.tasks[id]
		if filter.ProcessID != nil && stored.ProcessID != *filter.ProcessID {
			continue
		}
		out = append(out, cloneTask(stored))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SequenceNumber != out[j].SequenceNumber {
			return out[i].SequenceNumber < out[j].SequenceNumber
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, page), nil
}

func (r *taskRepo) Update(_ context.Context, t *task.Task) (*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[t.ID]; !ok {
		return nil, core.NotFoundf("task", "task %s not found", t.ID)
	}
	stored := cloneTask(t)
	r.s.tasks[stored.ID] = stored
	return cloneTask(stored), nil
}

// Delete removes the task and everything it owns under the store's single
// lock, mirroring the postgres transaction.
func (r *taskRepo) Delete(_ context.Context, id core.ID) (*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.tasks[id]
	if !ok {
		return nil, core.NotFoundf("task", "task %s not found", id)
	}
	for fieldID, f := range r.s.fields {
		if f.TaskID == id {
			delete(r.s.fields, fieldID)
		}
	}
	for connectorID, c := range r.s.connectors {
		if c.TaskID == id {
			delete(r.s.connectors, connectorID)
		}
	}
	for transformationID, t := range r.s.transformations {
		if t.TaskID == id {
			delete(r.s.transformations, transformationID)
		}
	}
	delete(r.s.tasks, id)
	return stored, nil
}

func (r *taskRepo) Resequence(
	_ context.Context,
	assignments []task.SequenceAssignment,
) ([]*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// Validate the whole batch before touching anything.
	for _, a := range assignments {
		if _, ok := r.s.tasks[a.TaskID]; !ok {
			return nil, core.NotFoundf("task", "task %s not found", a.TaskID)
		}
	}
	out := make([]*task.Task, 0, len(assignments))
	for _, a := range assignments {
		stored := r.s.tasks[a.TaskID]
		stored.SequenceNumber = a.SequenceNumber
		out = append(out, cloneTask(stored))
	}
	return out, nil
}
