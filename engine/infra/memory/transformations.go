package memory

import (
	"context"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/transformation"
)

type transformationRepo struct {
	s *Store
}

func cloneTransformation(t *transformation.Transformation) *transformation.Transformation {
	clone := *t
	return &clone
}

func (r *transformationRepo) Create(
	_ context.Context,
	t *transformation.Transformation,
) (*transformation.Transformation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneTransformation(t)
	stored.ID = r.s.newID()
	r.s.transformations[stored.ID] = stored
	return cloneTransformation(stored), nil
}

func (r *transformationRepo) CreateBatch(
	_ context.Context,
	ts []*transformation.Transformation,
) ([]*transformation.Transformation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*transformation.Transformation, 0, len(ts))
	for _, t := range ts {
		stored := cloneTransformation(t)
		stored.ID = r.s.newID()
		r.s.transformations[stored.ID] = stored
		out = append(out, cloneTransformation(stored))
	}
	return out, nil
}

func (r *transformationRepo) Get(_ context.Context, id core.ID) (*transformation.Transformation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.transformations[id]
	if !ok {
		return nil, core.NotFoundf("transformation", "transformation %s not found", id)
	}
	return cloneTransformation(stored), nil
}

func (r *transformationRepo) List(
	_ context.Context,
	filter transformation.Filter,
	page core.PageQuery,
) ([]*transformation.Transformation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*transformation.Transformation, 0, len(r.s.transformations))
	for _, id := range sortedIDs(r.s.transformations) {
		stored := r.s.transformations[id]
		if filter.TaskID != nil && stored.TaskID != *filter.TaskID {
			continue
		}
		out = append(out, cloneTransformation(stored))
	}
	return paginate(out, page), nil
}

func (r *transformationRepo) Update(
	_ context.Context,
	t *transformation.Transformation,
) (*transformation.Transformation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transformations[t.ID]; !ok {
		return nil, core.NotFoundf("transformation", "transformation %s not found", t.ID)
	}
	stored := cloneTransformation(t)
	r.s.transformations[stored.ID] = stored
	return cloneTransformation(stored), nil
}

func (r *transformationRepo) Delete(_ context.Context, id core.ID) (*transformation.Transformation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.transformations[id]
	if !ok {
		return nil, core.NotFoundf("transformation", "transformation %s not found", id)
	}
	delete(r.s.transformations, id)
	return stored, nil
}
