// Package memory provides map-backed Repository implementations with the
// same transactional semantics as the postgres store. It backs tests and
// local experiments; nothing persists across restarts.
package memory

import (
	"sort"
	"sync"

	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/engine/schedule"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/engine/transformation"
)

// Store holds every collection behind one mutex so multi-row operations
// (cascade delete, batch create, resequence) stay atomic.
type Store struct {
	mu     sync.RWMutex
	nextID core.ID

	agents          map[core.ID]*agent.Agent
	processes       map[core.ID]*process.Process
	schedules       map[core.ID]*schedule.Schedule
	tasks           map[core.ID]*task.Task
	fields          map[core.ID]*field.Field
	connectors      map[core.ID]*connector.Connector
	transformations map[core.ID]*transformation.Transformation
	users           map[string]*userRecord
}

func NewStore() *Store {
	return &Store{
		agents:          make(map[core.ID]*agent.Agent),
		processes:       make(map[core.ID]*process.Process),
		schedules:       make(map[core.ID]*schedule.Schedule),
		tasks:           make(map[core.ID]*task.Task),
		fields:          make(map[core.ID]*field.Field),
		connectors:      make(map[core.ID]*connector.Connector),
		transformations: make(map[core.ID]*transformation.Transformation),
		users:           make(map[string]*userRecord),
	}
}

func (s *Store) newID() core.ID {
	s.nextID++
	return s.nextID
}

// Agents returns the agent repository view of the store.
func (s *Store) Agents() agent.Repository { return &agentRepo{s} }

// Processes returns the process repository view of the store.
func (s *Store) Processes() process.Repository { return &processRepo{s} }

// Schedules returns the schedule repository view of the store.
func (s *Store) Schedules() schedule.Repository { return &scheduleRepo{s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() task.Repository { return &taskRepo{s} }

// Fields returns the field repository view of the store.
func (s *Store) Fields() field.Repository { return &fieldRepo{s} }

// Connectors returns the connector repository view of the store.
func (s *Store) Connectors() connector.Repository { return &connectorRepo{s} }

// Transformations returns the transformation repository view of the store.
func (s *Store) Transformations() transformation.Repository { return &transformationRepo{s} }

// sortedIDs returns the map keys in ascending order. IDs are monotonically
// assigned, so this is creation order.
func sortedIDs[V any](m map[core.ID]V) []core.ID {
	ids := make([]core.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// paginate applies the offset/limit window to an already ordered slice.
func paginate[T any](items []T, page core.PageQuery) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}
