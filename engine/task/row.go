package task

import (
	"time"

	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
)

// Row is the flat storage representation of a task: one record with every
// variant's columns nullable. Translation to and from the tagged union
// happens here, at the repository boundary.
type Row struct {
	ID             core.ID   `db:"id"`
	ProcessID      core.ID   `db:"process_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Kind           string    `db:"kind"`
	SequenceNumber int       `db:"sequence_number"`
	Enabled        bool      `db:"enabled"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`

	InputSource   *string `db:"input_source"`
	Input         *string `db:"input"`
	SaveInput     *bool   `db:"save_input"`
	ConnectorKind *string `db:"connector_kind"`
	OptionKind    *string `db:"option_kind"`
	LogicKind     *string `db:"logic_kind"`
	Response      *string `db:"response"`
}

// ToTask lifts the flat row into the tagged union. Columns belonging to
// other variants are dropped.
func (r *Row) ToTask() *Task {
	t := &Task{
		ID:             r.ID,
		ProcessID:      r.ProcessID,
		Name:           r.Name,
		Description:    r.Description,
		Kind:           Kind(r.Kind),
		SequenceNumber: r.SequenceNumber,
		Enabled:        r.Enabled,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	switch t.Kind {
	case KindInput:
		payload := &InputPayload{}
		if r.InputSource != nil {
			payload.Source = InputSource(*r.InputSource)
		}
		if r.Input != nil {
			payload.Input = *r.Input
		}
		if r.SaveInput != nil {
			payload.SaveInput = *r.SaveInput
		}
		t.Input = payload
	case KindOutput:
		payload := &OutputPayload{}
		if r.ConnectorKind != nil {
			payload.ConnectorKind = connector.Kind(*r.ConnectorKind)
		}
		if r.OptionKind != nil {
			payload.Option = OptionKind(*r.OptionKind)
		}
		t.Output = payload
	case KindLogic:
		payload := &LogicPayload{}
		if r.LogicKind != nil {
			payload.Kind = LogicKind(*r.LogicKind)
		}
		if r.Response != nil {
			payload.Response = *r.Response
		}
		t.Logic = payload
	}
	return t
}

// ToRow flattens the tagged union for storage.
func (t *Task) ToRow() *Row {
	r := &Row{
		ID:             t.ID,
		ProcessID:      t.ProcessID,
		Name:           t.Name,
		Description:    t.Description,
		Kind:           string(t.Kind),
		SequenceNumber: t.SequenceNumber,
		Enabled:        t.Enabled,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.Input != nil {
		source := string(t.Input.Source)
		input := t.Input.Input
		save := t.Input.SaveInput
		r.InputSource, r.Input, r.SaveInput = &source, &input, &save
	}
	if t.Output != nil {
		kind := string(t.Output.ConnectorKind)
		option := string(t.Output.Option)
		r.ConnectorKind, r.OptionKind = &kind, &option
	}
	if t.Logic != nil {
		kind := string(t.Logic.Kind)
		response := t.Logic.Response
		r.LogicKind, r.Response = &kind, &response
	}
	return r
}
