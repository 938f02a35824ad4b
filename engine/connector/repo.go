package connector

import (
	"context"

	"github.com/integraph/integraph/engine/core"
)

// Filter narrows connector listings to one owning task.
type Filter struct {
	TaskID *core.ID
}

// Repository defines the data access operations for connectors.
type Repository interface {
	Create(ctx context.Context, c *Connector) (*Connector, error)
	Get(ctx context.Context, id core.ID) (*Connector, error)
	List(ctx context.Context, filter Filter, page core.PageQuery) ([]*Connector, error)
	Update(ctx context.Context, c *Connector) (*Connector, error)
	Delete(ctx context.Context, id core.ID) (*Connector, error)
}
