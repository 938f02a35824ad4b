package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/core"
)

func TestSequenceForPosition(t *testing.T) {
	t.Run("Should space sequence numbers ten apart starting at ten", func(t *testing.T) {
		assert.Equal(t, 10, SequenceForPosition(0))
		assert.Equal(t, 20, SequenceForPosition(1))
		assert.Equal(t, 30, SequenceForPosition(2))
	})
}

func TestPlanResequence(t *testing.T) {
	mk := func(id core.ID, processID core.ID, seq int) *Task {
		return &Task{ID: id, ProcessID: processID, Name: "t", Kind: KindLogic, SequenceNumber: seq}
	}

	t.Run("Should follow the caller order, not the stored one", func(t *testing.T) {
		ordered := []*Task{mk(3, 1, 30), mk(1, 1, 10), mk(2, 1, 20)}
		assignments, err := PlanResequence(1, ordered)
		require.NoError(t, err)
		require.Len(t, assignments, 3)
		assert.Equal(t, SequenceAssignment{TaskID: 3, SequenceNumber: 10}, assignments[0])
		assert.Equal(t, SequenceAssignment{TaskID: 1, SequenceNumber: 20}, assignments[1])
		assert.Equal(t, SequenceAssignment{TaskID: 2, SequenceNumber: 30}, assignments[2])
	})

	t.Run("Should be idempotent for a repeated order", func(t *testing.T) {
		ordered := []*Task{mk(3, 1, 30), mk(1, 1, 10), mk(2, 1, 20)}
		first, err := PlanResequence(1, ordered)
		require.NoError(t, err)
		for i, a := range first {
			ordered[i].SequenceNumber = a.SequenceNumber
		}
		second, err := PlanResequence(1, ordered)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Should handle a single task", func(t *testing.T) {
		assignments, err := PlanResequence(1, []*Task{mk(7, 1, 40)})
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, 10, assignments[0].SequenceNumber)
	})

	t.Run("Should reject a task from another process", func(t *testing.T) {
		_, err := PlanResequence(1, []*Task{mk(1, 1, 10), mk(2, 9, 10)})
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
		assert.Contains(t, err.Error(), "belongs to process")
	})

	t.Run("Should reject a duplicated task id", func(t *testing.T) {
		_, err := PlanResequence(1, []*Task{mk(1, 1, 10), mk(1, 1, 10)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "appears more than once")
	})
}
