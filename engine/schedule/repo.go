package schedule

import (
	"context"

	"github.com/integraph/integraph/engine/core"
)

// Filter narrows schedule listings to one owning process.
type Filter struct {
	ProcessID *core.ID
}

// Repository defines the data access operations for schedules.
type Repository interface {
	Create(ctx context.Context, s *Schedule) (*Schedule, error)
	Get(ctx context.Context, id core.ID) (*Schedule, error)
	List(ctx context.Context, filter Filter, page core.PageQuery) ([]*Schedule, error)
	Update(ctx context.Context, s *Schedule) (*Schedule, error)
	Delete(ctx context.Context, id core.ID) (*Schedule, error)
	// GetByProcess returns the process's schedule, or a NotFound error
	// when the process has none.
	GetByProcess(ctx context.Context, processID core.ID) (*Schedule, error)
}
