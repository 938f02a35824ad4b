package task

import (
	"github.com/integraph/integraph/engine/core"
)

// SequenceAssignment pins one task to its new sequence number.
type SequenceAssignment struct {
	TaskID         core.ID
	SequenceNumber int
}

// SequenceForPosition returns the sequence number for the 0-based position
// in the caller-supplied order.
func SequenceForPosition(position int) int {
	return (position + 1) * SequenceSpacing
}

// PlanResequence maps a caller-supplied task order to sequence assignments.
// The caller's order is authoritative; no secondary sort is applied, and
// applying the same order twice yields the same assignments. Every task must
// belong to the given process, and duplicates are rejected.
func PlanResequence(processID core.ID, ordered []*Task) ([]SequenceAssignment, error) {
	assignments := make([]SequenceAssignment, 0, len(ordered))
	seen := make(map[core.ID]bool, len(ordered))
	for i, t := range ordered {
		if t.ProcessID != processID {
			return nil, core.Invalidf("task", "task %s belongs to process %s, not %s", t.ID, t.ProcessID, processID)
		}
		if seen[t.ID] {
			return nil, core.Invalidf("task", "task %s appears more than once in the order", t.ID)
		}
		seen[t.ID] = true
		assignments = append(assignments, SequenceAssignment{
			TaskID:         t.ID,
			SequenceNumber: SequenceForPosition(i),
		})
	}
	return assignments, nil
}
