package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
)

func TestTask_Normalize(t *testing.T) {
	t.Run("Should drop payloads not matching the kind", func(t *testing.T) {
		task := &Task{
			ProcessID: 1,
			Name:      "read-orders",
			Kind:      KindInput,
			Input:     &InputPayload{Source: SourceFile, Input: "/data/orders.csv"},
			Output:    &OutputPayload{ConnectorKind: connector.KindDatabase},
			Logic:     &LogicPayload{Kind: LogicUniqueFilter},
		}
		task.Normalize()
		assert.NotNil(t, task.Input)
		assert.Nil(t, task.Output)
		assert.Nil(t, task.Logic)
	})

	t.Run("Should keep a matching payload untouched", func(t *testing.T) {
		task := &Task{Kind: KindLogic, Logic: &LogicPayload{Kind: LogicRecordFilter, Response: "matched"}}
		task.Normalize()
		require.NotNil(t, task.Logic)
		assert.Equal(t, LogicRecordFilter, task.Logic.Kind)
	})
}

func TestTask_Validate(t *testing.T) {
	valid := func() *Task {
		return &Task{
			ProcessID:      1,
			Name:           "read-orders",
			Kind:           KindInput,
			SequenceNumber: 10,
			Enabled:        true,
			Input:          &InputPayload{Source: SourceText, Input: "42,acme"},
		}
	}

	t.Run("Should accept a complete input task", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Should reject a missing process reference", func(t *testing.T) {
		task := valid()
		task.ProcessID = 0
		err := task.Validate()
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
	})

	t.Run("Should reject an empty name", func(t *testing.T) {
		task := valid()
		task.Name = ""
		require.Error(t, task.Validate())
	})

	t.Run("Should reject an unknown kind", func(t *testing.T) {
		task := &Task{ProcessID: 1, Name: "x", Kind: "Sideways"}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown kind")
	})

	t.Run("Should reject a negative sequence number", func(t *testing.T) {
		task := valid()
		task.SequenceNumber = -10
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sequence_number must not be negative")
	})

	t.Run("Should reject an unknown input source", func(t *testing.T) {
		task := valid()
		task.Input.Source = "Clipboard"
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown input source")
	})

	t.Run("Should reject an unknown connector kind on an output task", func(t *testing.T) {
		task := &Task{
			ProcessID: 1,
			Name:      "write-orders",
			Kind:      KindOutput,
			Output:    &OutputPayload{ConnectorKind: "Fax"},
		}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown connector kind")
	})

	t.Run("Should reject an unknown option kind on an output task", func(t *testing.T) {
		task := &Task{
			ProcessID: 1,
			Name:      "write-orders",
			Kind:      KindOutput,
			Output:    &OutputPayload{ConnectorKind: connector.KindFile, Option: "Sometimes"},
		}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown option kind")
	})

	t.Run("Should reject an unknown logic kind", func(t *testing.T) {
		task := &Task{ProcessID: 1, Name: "dedupe", Kind: KindLogic, Logic: &LogicPayload{Kind: "Guesswork"}}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown logic kind")
	})

	t.Run("Should accept an output task with empty optional payload fields", func(t *testing.T) {
		task := &Task{ProcessID: 1, Name: "write-orders", Kind: KindOutput, Output: &OutputPayload{}}
		assert.NoError(t, task.Validate())
	})
}

func TestRow_RoundTrip(t *testing.T) {
	t.Run("Should carry an output payload through the flat row", func(t *testing.T) {
		original := &Task{
			ID:             4,
			ProcessID:      2,
			Name:           "write-orders",
			Kind:           KindOutput,
			SequenceNumber: 20,
			Enabled:        true,
			Output:         &OutputPayload{ConnectorKind: connector.KindDatabase, Option: OptionDateTimeIncremental},
		}
		row := original.ToRow()
		require.NotNil(t, row.ConnectorKind)
		assert.Nil(t, row.InputSource)
		assert.Nil(t, row.LogicKind)
		restored := row.ToTask()
		assert.Equal(t, original, restored)
	})

	t.Run("Should leave payload columns null for a logic task", func(t *testing.T) {
		original := &Task{
			ID:        5,
			ProcessID: 2,
			Name:      "dedupe",
			Kind:      KindLogic,
			Logic:     &LogicPayload{Kind: LogicUniqueFilter, Response: "kept"},
		}
		row := original.ToRow()
		assert.Nil(t, row.ConnectorKind)
		assert.Nil(t, row.SaveInput)
		require.NotNil(t, row.LogicKind)
		assert.Equal(t, original, row.ToTask())
	})
}
