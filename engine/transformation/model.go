package transformation

import (
	"time"

	"github.com/integraph/integraph/engine/core"
)

// ConditionKind is the comparison applied to the condition field.
type ConditionKind string

const (
	ConditionEqual            ConditionKind = "Equal"
	ConditionNotEqual         ConditionKind = "NotEqual"
	ConditionGreaterThan      ConditionKind = "GreaterThan"
	ConditionLessThan         ConditionKind = "LessThan"
	ConditionGreaterThanEqual ConditionKind = "GreaterThanEqual"
	ConditionLessThanEqual    ConditionKind = "LessThanEqual"
)

func (c ConditionKind) IsValid() bool {
	switch c {
	case ConditionEqual, ConditionNotEqual, ConditionGreaterThan,
		ConditionLessThan, ConditionGreaterThanEqual, ConditionLessThanEqual:
		return true
	default:
		return false
	}
}

// Transformation is a conditional rule relating two fields of one task:
// when the condition holds for the condition field, the value field is
// rewritten. Both fields must belong to the same task as the rule.
type Transformation struct {
	ID               core.ID       `json:"id"                 db:"id"`
	TaskID           core.ID       `json:"task_id"            db:"task_id"`
	ConditionFieldID core.ID       `json:"condition_field_id" db:"condition_field_id"`
	ValueFieldID     core.ID       `json:"value_field_id"     db:"value_field_id"`
	ConditionKind    ConditionKind `json:"condition_kind"     db:"condition_kind"`
	CreatedAt        time.Time     `json:"created_at"         db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"         db:"updated_at"`
}

// Validate checks the field rules that do not require repository access.
func (t *Transformation) Validate() error {
	if t.TaskID.IsZero() {
		return core.Invalidf("transformation", "task_id is required")
	}
	if t.ConditionFieldID.IsZero() {
		return core.Invalidf("transformation", "condition_field_id is required")
	}
	if t.ValueFieldID.IsZero() {
		return core.Invalidf("transformation", "value_field_id is required")
	}
	if !t.ConditionKind.IsValid() {
		return core.Invalidf("transformation", "unknown condition kind %q", t.ConditionKind)
	}
	return nil
}
