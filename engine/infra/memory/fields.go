package memory

import (
	"context"

	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
)

type fieldRepo struct {
	s *Store
}

func cloneField(f *field.Field) *field.Field {
	clone := *f
	return &clone
}

func (r *fieldRepo) Create(_ context.Context, f *field.Field) (*field.Field, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneField(f)
	stored.ID = r.s.newID()
	r.s.fields[stored.ID] = stored
	return cloneField(stored), nil
}

func (r *fieldRepo) CreateBatch(_ context.Context, fields []*field.Field) ([]*field.Field, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*field.Field, 0, len(fields))
	for _, f := range fields {
		stored := cloneField(f)
		stored.ID = r.s.newID()
		r.s.fields[stored.ID] = stored
		out = append(out, cloneField(stored))
	}
	return out, nil
}

func (r *fieldRepo) Get(_ context.Context, id core.ID) (*field.Field, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.fields[id]
	if !ok {
		return nil, core.NotFoundf("field", "field %s not found", id)
	}
	return cloneField(stored), nil
}

func (r *fieldRepo) List(_ context.Context, filter field.Filter, page core.PageQuery) ([]*field.Field, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*field.Field, 0, len(r.s.fields))
	for _, id := range sortedIDs(r.s.fields) {
		stored := r.s.fields[id]
		if filter.TaskID != nil && stored.TaskID != *filter.TaskID {
			continue
		}
		out = append(out, cloneField(stored))
	}
	return paginate(out, page), nil
}

func (r *fieldRepo) Update(_ context.Context, f *field.Field) (*field.Field, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.fields[f.ID]; !ok {
		return nil, core.NotFoundf("field", "field %s not found", f.ID)
	}
	stored := cloneField(f)
	r.s.fields[stored.ID] = stored
	return cloneField(stored), nil
}

func (r *fieldRepo) Delete(_ context.Context, id core.ID) (*field.Field, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.fields[id]
	if !ok {
		return nil, core.NotFoundf("field", "field %s not found", id)
	}
	delete(r.s.fields, id)
	return stored, nil
}
