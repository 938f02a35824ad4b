package memory

import (
	"context"

	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/core"
)

type agentRepo struct {
	s *Store
}

func cloneAgent(a *agent.Agent) *agent.Agent {
	clone := *a
	return &clone
}

func (r *agentRepo) Create(_ context.Context, a *agent.Agent) (*agent.Agent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneAgent(a)
	stored.ID = r.s.newID()
	r.s.agents[stored.ID] = stored
	return cloneAgent(stored), nil
}

func (r *agentRepo) Get(_ context.Context, id core.ID) (*agent.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.agents[id]
	if !ok {
		return nil, core.NotFoundf("agent", "agent %s not found", id)
	}
	return cloneAgent(stored), nil
}

func (r *agentRepo) List(_ context.Context, page core.PageQuery) ([]*agent.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*agent.Agent, 0, len(r.s.agents))
	for _, id := range sortedIDs(r.s.agents) {
		out = append(out, cloneAgent(r.s.agents[id]))
	}
	return paginate(out, page), nil
}

func (r *agentRepo) Update(_ context.Context, a *agent.Agent) (*agent.Agent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.agents[a.ID]; !ok {
		return nil, core.NotFoundf("agent", "agent %s not found", a.ID)
	}
	stored := cloneAgent(a)
	r.s.agents[stored.ID] = stored
	return cloneAgent(stored), nil
}

func (r *agentRepo) Delete(_ context.Context, id core.ID) (*agent.Agent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.agents[id]
	if !ok {
		return nil, core.NotFoundf("agent", "agent %s not found", id)
	}
	delete(r.s.agents, id)
	return stored, nil
}
