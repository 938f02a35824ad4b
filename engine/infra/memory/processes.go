package memory

import (
	"context"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/process"
)

type processRepo struct {
	s *Store
}

func cloneProcess(p *process.Process) *process.Process {
	clone := *p
	return &clone
}

func (r *processRepo) Create(_ context.Context, p *process.Process) (*process.Process, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneProcess(p)
	stored.ID = r.s.newID()
	r.s.processes[stored.ID] = stored
	return cloneProcess(stored), nil
}

func (r *processRepo) Get(_ context.Context, id core.ID) (*process.Process, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.processes[id]
	if !ok {
		return nil, core.NotFoundf("process", "process %s not found", id)
	}
	return cloneProcess(stored), nil
}

func (r *processRepo) List(
	_ context.Context,
	filter process.Filter,
	page core.PageQuery,
) ([]*process.Process, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*process.Process, 0, len(r.s.processes))
	for _, id := range sortedIDs(r.s.processes) {
		stored := r.s.processes[id]
		if filter.AgentID != nil && stored.AgentID != *filter.AgentID {
			continue
		}
		out = append(out, cloneProcess(stored))
	}
	return paginate(out, page), nil
}

func (r *processRepo) Update(_ context.Context, p *process.Process) (*process.Process, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.processes[p.ID]; !ok {
		return nil, core.NotFoundf("process", "process %s not found", p.ID)
	}
	stored := cloneProcess(p)
	r.s.processes[stored.ID] = stored
	return cloneProcess(stored), nil
}

func (r *processRepo) Delete(_ context.Context, id core.ID) (*process.Process, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.processes[id]
	if !ok {
		return nil, core.NotFoundf("process", "process %s not found", id)
	}
	delete(r.s.processes, id)
	return stored, nil
}

func (r *processRepo) CountByAgent(_ context.Context, agentID core.ID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, stored := range r.s.processes {
		if stored.AgentID == agentID {
			count++
		}
	}
	return count, nil
}
