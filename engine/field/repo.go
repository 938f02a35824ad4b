package field

import (
	"context"

	"github.com/integraph/integraph/engine/core"
)

// Filter narrows field listings to one owning task.
type Filter struct {
	TaskID *core.ID
}

// Repository defines the data access operations for fields.
type Repository interface {
	Create(ctx context.Context, f *Field) (*Field, error)
	// CreateBatch stores all fields in one transaction; a failure leaves
	// no partial rows.
	CreateBatch(ctx context.Context, fields []*Field) ([]*Field, error)
	Get(ctx context.Context, id core.ID) (*Field, error)
	List(ctx context.Context, filter Filter, page core.PageQuery) ([]*Field, error)
	Update(ctx context.Context, f *Field) (*Field, error)
	Delete(ctx context.Context, id core.ID) (*Field, error)
}
