package task

import (
	"time"

	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
)

// Kind is the closed vocabulary of task variants.
type Kind string

const (
	KindInput  Kind = "Input"
	KindOutput Kind = "Output"
	KindLogic  Kind = "Logic"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindInput, KindOutput, KindLogic:
		return true
	default:
		return false
	}
}

// InputSource names where an input task reads from.
type InputSource string

const (
	SourceFile InputSource = "File"
	SourceText InputSource = "Text"
)

// LogicKind names the rule a logic task applies.
type LogicKind string

const (
	LogicUniqueFilter   LogicKind = "UniqueFilter"
	LogicTransformation LogicKind = "Transformation"
	LogicRecordFilter   LogicKind = "RecordFilter"
)

// OptionKind names the incremental-load option of an output task.
type OptionKind string

const (
	OptionNone                OptionKind = "None"
	OptionDateTimeIncremental OptionKind = "DateTimeIncremental"
	OptionUniqueIDIncremental OptionKind = "UniqueIDIncremental"
)

// InputPayload holds the fields meaningful only for Input tasks.
type InputPayload struct {
	Source    InputSource `json:"source"`
	Input     string      `json:"input"`
	SaveInput bool        `json:"save_input"`
}

// OutputPayload holds the fields meaningful only for Output tasks.
type OutputPayload struct {
	ConnectorKind connector.Kind `json:"connector_kind"`
	Option        OptionKind     `json:"option"`
}

// LogicPayload holds the fields meaningful only for Logic tasks.
type LogicPayload struct {
	Kind     LogicKind `json:"kind"`
	Response string    `json:"response"`
}

// SequenceSpacing is the gap between consecutive sequence numbers assigned
// by the sequencer and by task creation.
const SequenceSpacing = 10

// Task is one ordered step of a process. The envelope is shared across all
// kinds; exactly the payload matching Kind carries meaning, the others are
// nil. Storage keeps one flat row per task (see Row).
type Task struct {
	ID             core.ID   `json:"id"`
	ProcessID      core.ID   `json:"process_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Kind           Kind      `json:"kind"`
	SequenceNumber int       `json:"sequence_number"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Input  *InputPayload  `json:"input,omitempty"`
	Output *OutputPayload `json:"output,omitempty"`
	Logic  *LogicPayload  `json:"logic,omitempty"`
}

// Normalize drops payloads that do not match the task's kind. Stray variant
// data is meaningless rather than an error.
func (t *Task) Normalize() {
	if t.Kind != KindInput {
		t.Input = nil
	}
	if t.Kind != KindOutput {
		t.Output = nil
	}
	if t.Kind != KindLogic {
		t.Logic = nil
	}
}

// Validate checks the field rules that do not require repository access.
// Callers are expected to Normalize first.
func (t *Task) Validate() error {
	if t.ProcessID.IsZero() {
		return core.Invalidf("task", "process_id is required")
	}
	if t.Name == "" {
		return core.Invalidf("task", "name is required")
	}
	if !t.Kind.IsValid() {
		return core.Invalidf("task", "unknown kind %q", t.Kind)
	}
	if t.SequenceNumber < 0 {
		return core.Invalidf("task", "sequence_number must not be negative")
	}
	if t.Input != nil {
		switch t.Input.Source {
		case SourceFile, SourceText, "":
		default:
			return core.Invalidf("task", "unknown input source %q", t.Input.Source)
		}
	}
	if t.Output != nil {
		if t.Output.ConnectorKind != "" && !t.Output.ConnectorKind.IsValid() {
			return core.Invalidf("task", "unknown connector kind %q", t.Output.ConnectorKind)
		}
		switch t.Output.Option {
		case OptionNone, OptionDateTimeIncremental, OptionUniqueIDIncremental, "":
		default:
			return core.Invalidf("task", "unknown option kind %q", t.Output.Option)
		}
	}
	if t.Logic != nil {
		switch t.Logic.Kind {
		case LogicUniqueFilter, LogicTransformation, LogicRecordFilter, "":
		default:
			return core.Invalidf("task", "unknown logic kind %q", t.Logic.Kind)
		}
	}
	return nil
}
