package agent

import (
	"time"

	"github.com/integraph/integraph/engine/core"
)

// Kind distinguishes service-style agents from process-style agents.
type Kind string

const (
	KindService Kind = "Service"
	KindProcess Kind = "Process"
)

// IsValid reports whether the kind belongs to the closed vocabulary.
func (k Kind) IsValid() bool {
	switch k {
	case KindService, KindProcess:
		return true
	default:
		return false
	}
}

// Agent is the top-level named owner of integration processes.
type Agent struct {
	ID               core.ID   `json:"id"                db:"id"`
	Name             string    `json:"name"              db:"name"`
	Code             string    `json:"code"              db:"code"`
	Kind             Kind      `json:"kind"              db:"kind"`
	Enabled          bool      `json:"enabled"           db:"enabled"`
	UpdatesAvailable bool      `json:"updates_available" db:"updates_available"`
	CreatedAt        time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"        db:"updated_at"`
}

// Validate checks the field rules that do not require repository access.
func (a *Agent) Validate() error {
	if a.Name == "" {
		return core.Invalidf("agent", "name is required")
	}
	if a.Code == "" {
		return core.Invalidf("agent", "code is required")
	}
	if !a.Kind.IsValid() {
		return core.Invalidf("agent", "unknown kind %q", a.Kind)
	}
	return nil
}
