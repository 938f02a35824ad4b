package process

import (
	"context"

	"github.com/integraph/integraph/engine/core"
)

// Filter narrows process listings to one owning agent.
type Filter struct {
	AgentID *core.ID
}

// Repository defines the data access operations for processes.
type Repository interface {
	Create(ctx context.Context, p *Process) (*Process, error)
	Get(ctx context.Context, id core.ID) (*Process, error)
	List(ctx context.Context, filter Filter, page core.PageQuery) ([]*Process, error)
	Update(ctx context.Context, p *Process) (*Process, error)
	Delete(ctx context.Context, id core.ID) (*Process, error)
	CountByAgent(ctx context.Context, agentID core.ID) (int, error)
}
