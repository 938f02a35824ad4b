package connector

import (
	"time"

	"github.com/integraph/integraph/engine/core"
)

// Kind is the closed vocabulary of external system bindings.
type Kind string

const (
	KindWebService   Kind = "WebService"
	KindMessageQueue Kind = "MessageQueue"
	KindDatabase     Kind = "Database"
	KindEmail        Kind = "Email"
	KindFile         Kind = "File"
)

func (k Kind) IsValid() bool {
	_, ok := kindRules[k]
	return ok
}

// ServiceKind selects the web-service protocol.
type ServiceKind string

const (
	ServiceSOAP ServiceKind = "SOAP"
	ServiceREST ServiceKind = "REST"
)

// DatabaseKind selects the database dialect.
type DatabaseKind string

const (
	DatabaseOracle DatabaseKind = "Oracle"
	DatabaseSQL    DatabaseKind = "Sql"
)

// QueryKind selects how a database connector issues its statement.
type QueryKind string

const (
	QuerySelect          QueryKind = "SelectQuery"
	QueryNonQuery        QueryKind = "NonQuery"
	QueryStoredProcedure QueryKind = "StoredProcedure"
)

// Connector binds a task to an external system. One row stores all kinds;
// only the attribute subset matching Kind is meaningful, a tagged union in
// spirit.
type Connector struct {
	ID        core.ID   `json:"id"         db:"id"`
	TaskID    core.ID   `json:"task_id"    db:"task_id"`
	DataType  string    `json:"data_type"  db:"data_type"`
	Kind      Kind      `json:"kind"       db:"kind"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Email
	FromEmail string `json:"from_email,omitempty" db:"from_email"`
	Email     string `json:"email,omitempty"      db:"email"`
	Subject   string `json:"subject,omitempty"    db:"subject"`

	// WebService
	ServiceKind ServiceKind `json:"service_kind,omitempty" db:"service_kind"`
	Endpoint    string      `json:"endpoint,omitempty"     db:"endpoint"`
	ResponseTag string      `json:"response_tag,omitempty" db:"response_tag"`

	// Database
	DatabaseKind     DatabaseKind `json:"database_kind,omitempty"     db:"database_kind"`
	ConnectionString string       `json:"connection_string,omitempty" db:"connection_string"`
	QueryKind        QueryKind    `json:"query_kind,omitempty"        db:"query_kind"`
	Query            string       `json:"query,omitempty"             db:"query"`

	// MessageQueue
	QueuePath string `json:"queue_path,omitempty" db:"queue_path"`
}

// kindRules maps each connector kind to its required-field checks. Adding a
// kind's rule set is one local entry, not a new branch in the engine.
var kindRules = map[Kind]func(*Connector) error{
	KindEmail:        emailRules,
	KindWebService:   webServiceRules,
	KindDatabase:     databaseRules,
	KindMessageQueue: messageQueueRules,
	KindFile:         func(*Connector) error { return nil },
}

func emailRules(c *Connector) error {
	if c.FromEmail == "" {
		return core.Invalidf("connector", "from_email is required for Email connectors")
	}
	if c.Email == "" {
		return core.Invalidf("connector", "email is required for Email connectors")
	}
	if c.Subject == "" {
		return core.Invalidf("connector", "subject is required for Email connectors")
	}
	return nil
}

func webServiceRules(c *Connector) error {
	switch c.ServiceKind {
	case ServiceSOAP, ServiceREST:
	case "":
		return core.Invalidf("connector", "service_kind is required for WebService connectors")
	default:
		return core.Invalidf("connector", "unknown service kind %q", c.ServiceKind)
	}
	if c.Endpoint == "" {
		return core.Invalidf("connector", "endpoint is required for WebService connectors")
	}
	return nil
}

func databaseRules(c *Connector) error {
	switch c.DatabaseKind {
	case DatabaseOracle, DatabaseSQL:
	case "":
		return core.Invalidf("connector", "database_kind is required for Database connectors")
	default:
		return core.Invalidf("connector", "unknown database kind %q", c.DatabaseKind)
	}
	if c.ConnectionString == "" {
		return core.Invalidf("connector", "connection_string is required for Database connectors")
	}
	switch c.QueryKind {
	case QuerySelect, QueryNonQuery, QueryStoredProcedure:
	case "":
		return core.Invalidf("connector", "query_kind is required for Database connectors")
	default:
		return core.Invalidf("connector", "unknown query kind %q", c.QueryKind)
	}
	if c.Query == "" {
		return core.Invalidf("connector", "query is required for Database connectors")
	}
	return nil
}

func messageQueueRules(c *Connector) error {
	if c.QueuePath == "" {
		return core.Invalidf("connector", "queue_path is required for MessageQueue connectors")
	}
	return nil
}

// Validate checks the kind tag and the required attributes of the matching
// kind. Attributes belonging to other kinds are ignored.
func (c *Connector) Validate() error {
	if c.TaskID.IsZero() {
		return core.Invalidf("connector", "task_id is required")
	}
	rules, ok := kindRules[c.Kind]
	if !ok {
		return core.Invalidf("connector", "unknown kind %q", c.Kind)
	}
	return rules(c)
}
