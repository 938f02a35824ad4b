package agent

import (
	"context"

	"github.com/integraph/integraph/engine/core"
)

// Repository defines the data access operations for agents.
type Repository interface {
	Create(ctx context.Context, a *Agent) (*Agent, error)
	Get(ctx context.Context, id core.ID) (*Agent, error)
	List(ctx context.Context, page core.PageQuery) ([]*Agent, error)
	Update(ctx context.Context, a *Agent) (*Agent, error)
	Delete(ctx context.Context, id core.ID) (*Agent, error)
}
