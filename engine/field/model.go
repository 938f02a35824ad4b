package field

import (
	"time"

	"github.com/integraph/integraph/engine/core"
)

// DataType says whether a field holds a single value or a list.
type DataType string

const (
	DataSingle DataType = "Single"
	DataList   DataType = "List"
)

func (d DataType) IsValid() bool {
	switch d {
	case DataSingle, DataList:
		return true
	default:
		return false
	}
}

// Field is a typed named parameter attached to a task. The value is kept as
// a string; interpretation is left to the connector or transformation that
// consumes it.
type Field struct {
	ID        core.ID   `json:"id"         db:"id"`
	TaskID    core.ID   `json:"task_id"    db:"task_id"`
	Key       string    `json:"key"        db:"field_name"`
	DataType  DataType  `json:"data_type"  db:"data_type"`
	Value     string    `json:"value"      db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks the field rules that do not require repository access.
func (f *Field) Validate() error {
	if f.TaskID.IsZero() {
		return core.Invalidf("field", "task_id is required")
	}
	if f.Key == "" {
		return core.Invalidf("field", "key is required")
	}
	if !f.DataType.IsValid() {
		return core.Invalidf("field", "unknown data type %q", f.DataType)
	}
	return nil
}
