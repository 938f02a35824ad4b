package memory

import (
	"context"

	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
)

type connectorRepo struct {
	s *Store
}

func cloneConnector(c *connector.Connector) *connector.Connector {
	clone := *c
	return &clone
}

func (r *connectorRepo) Create(_ context.Context, c *connector.Connector) (*connector.Connector, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneConnector(c)
	stored.ID = r.s.newID()
	r.s.connectors[stored.ID] = stored
	return cloneConnector(stored), nil
}

func (r *connectorRepo) Get(_ context.Context, id core.ID) (*connector.Connector, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.connectors[id]
	if !ok {
		return nil, core.NotFoundf("connector", "connector %s not found", id)
	}
	return cloneConnector(stored), nil
}

func (r *connectorRepo) List(
	_ context.Context,
	filter connector.Filter,
	page core.PageQuery,
) ([]*connector.Connector, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*connector.Connector, 0, len(r.s.connectors))
	for _, id := range sortedIDs(r.s.connectors) {
		stored := r.s.connectors[id]
		if filter.TaskID != nil && stored.TaskID != *filter.TaskID {
			continue
		}
		out = append(out, cloneConnector(stored))
	}
	return paginate(out, page), nil
}

func (r *connectorRepo) Update(_ context.Context, c *connector.Connector) (*connector.Connector, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.connectors[c.ID]; !ok {
		return nil, core.NotFoundf("connector", "connector %s not found", c.ID)
	}
	stored := cloneConnector(c)
	r.s.connectors[stored.ID] = stored
	return cloneConnector(stored), nil
}

func (r *connectorRepo) Delete(_ context.Context, id core.ID) (*connector.Connector, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.connectors[id]
	if !ok {
		return nil, core.NotFoundf("connector", "connector %s not found", id)
	}
	delete(r.s.connectors, id)
	return stored, nil
}
