package transformation

import (
	"context"

	"github.com/integraph/integraph/engine/core"
)

// Filter narrows transformation listings to one owning task.
type Filter struct {
	TaskID *core.ID
}

// Repository defines the data access operations for transformations.
type Repository interface {
	Create(ctx context.Context, t *Transformation) (*Transformation, error)
	// CreateBatch stores all transformations in one transaction; a
	// failure leaves no partial rows.
	CreateBatch(ctx context.Context, ts []*Transformation) ([]*Transformation, error)
	Get(ctx context.Context, id core.ID) (*Transformation, error)
	List(ctx context.Context, filter Filter, page core.PageQuery) ([]*Transformation, error)
	Update(ctx context.Context, t *Transformation) (*Transformation, error)
	Delete(ctx context.Context, id core.ID) (*Transformation, error)
}
