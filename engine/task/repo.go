package task

import (
	"context"

	"github.com/integraph/integraph/engine/core"
)

// Filter narrows task listings to one owning process.
type Filter struct {
	ProcessID *core.ID
}

// Repository defines the data access operations for tasks.
type Repository interface {
	// Create stores a new task. A zero SequenceNumber is assigned
	// (max within the process + SequenceSpacing) in the same write.
	Create(ctx context.Context, t *Task) (*Task, error)
	Get(ctx context.Context, id core.ID) (*Task, error)
	// List returns tasks ordered by sequence number, then id.
	List(ctx context.Context, filter Filter, page core.PageQuery) ([]*Task, error)
	Update(ctx context.Context, t *Task) (*Task, error)
	// Delete removes the task and, in the same transaction, every field,
	// connector, and transformation it owns.
	Delete(ctx context.Context, id core.ID) (*Task, error)
	// Resequence applies the assignments atomically and returns the
	// updated tasks in assignment order.
	Resequence(ctx context.Context, assignments []SequenceAssignment) ([]*Task, error)
}
