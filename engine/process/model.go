package process

import (
	"time"

	"github.com/integraph/integraph/engine/core"
)

// TriggerKind names what initiates a process run.
type TriggerKind string

const (
	TriggerWebService   TriggerKind = "WebService"
	TriggerWebHook      TriggerKind = "WebHook"
	TriggerMessageQueue TriggerKind = "MessageQueue"
	TriggerScheduler    TriggerKind = "Scheduler"
)

func (t TriggerKind) IsValid() bool {
	switch t {
	case TriggerWebService, TriggerWebHook, TriggerMessageQueue, TriggerScheduler:
		return true
	default:
		return false
	}
}

// Status is the run state of a process. It only changes through the explicit
// start/stop operations; ordinary field updates leave it untouched.
type Status string

const (
	StatusStopped Status = "Stopped"
	StatusRunning Status = "Running"
	StatusPaused  Status = "Paused"
	StatusError   Status = "Error"
)

// Process is one automatable workflow owned by an agent.
type Process struct {
	ID          core.ID     `json:"id"           db:"id"`
	AgentID     core.ID     `json:"agent_id"     db:"agent_id"`
	Name        string      `json:"name"         db:"name"`
	Description string      `json:"description"  db:"description"`
	AutoStart   bool        `json:"auto_start"   db:"auto_start"`
	TriggerKind TriggerKind `json:"trigger_kind" db:"trigger_kind"`
	Status      Status      `json:"status"       db:"status"`
	CreatedAt   time.Time   `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"   db:"updated_at"`
}

// Validate checks the field rules that do not require repository access.
func (p *Process) Validate() error {
	if p.AgentID.IsZero() {
		return core.Invalidf("process", "agent_id is required")
	}
	if p.Name == "" {
		return core.Invalidf("process", "name is required")
	}
	if !p.TriggerKind.IsValid() {
		return core.Invalidf("process", "unknown trigger kind %q", p.TriggerKind)
	}
	return nil
}

// Start transitions the process to Running. Re-starting a running process is
// a no-op success.
func (p *Process) Start() error {
	switch p.Status {
	case StatusRunning:
		return nil
	case StatusStopped, StatusPaused, StatusError:
		p.Status = StatusRunning
		return nil
	default:
		return core.Invalidf("process", "no start transition from status %q", p.Status)
	}
}

// Stop transitions the process to Stopped. Stopping an already stopped
// process is a no-op success; there is no stop transition out of Error.
func (p *Process) Stop() error {
	switch p.Status {
	case StatusStopped:
		return nil
	case StatusRunning, StatusPaused:
		p.Status = StatusStopped
		return nil
	default:
		return core.Invalidf("process", "no stop transition from status %q", p.Status)
	}
}
