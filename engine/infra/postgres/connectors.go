package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/core"
)

var connectorColumns = []string{
	"id", "task_id", "data_type", "kind", "from_email", "email", "subject",
	"service_kind", "endpoint", "response_tag", "database_kind",
	"connection_string", "query_kind", "query", "queue_path",
	"created_at", "updated_at",
}

// ConnectorRepo implements connector.Repository on postgres. All kind
// attribute columns are stored, defaulted to empty strings for the kinds
// that do not use them.
type ConnectorRepo struct {
	db DB
}

func NewConnectorRepo(db DB) *ConnectorRepo {
	return &ConnectorRepo{db: db}
}

func (r *ConnectorRepo) Create(ctx context.Context, c *connector.Connector) (*connector.Connector, error) {
	query, args, err := sq.Insert("connectors").
		Columns("task_id", "data_type", "kind", "from_email", "email", "subject",
			"service_kind", "endpoint", "response_tag", "database_kind",
			"connection_string", "query_kind", "query", "queue_path").
		Values(c.TaskID, c.DataType, c.Kind, c.FromEmail, c.Email, c.Subject,
			c.ServiceKind, c.Endpoint, c.ResponseTag, c.DatabaseKind,
			c.ConnectionString, c.QueryKind, c.Query, c.QueuePath).
		Suffix("RETURNING " + columnList(connectorColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("connector", err)
	}
	var created connector.Connector
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("connector", err)
	}
	return &created, nil
}

func (r *ConnectorRepo) Get(ctx context.Context, id core.ID) (*connector.Connector, error) {
	query, args, err := sq.Select(connectorColumns...).
		From("connectors").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("connector", err)
	}
	var c connector.Connector
	if err := pgxscan.Get(ctx, r.db, &c, query, args...); err != nil {
		return nil, wrapGetErr("connector", fmt.Sprintf("connector %s not found", id), err)
	}
	return &c, nil
}

func (r *ConnectorRepo) List(ctx context.Context, filter connector.Filter, page core.PageQuery) ([]*connector.Connector, error) {
	page = page.Normalize()
	builder := sq.Select(connectorColumns...).
		From("connectors").
		OrderBy("id").
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit)).
		PlaceholderFormat(sq.Dollar)
	if filter.TaskID != nil {
		builder = builder.Where(sq.Eq{"task_id": *filter.TaskID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, core.StorageFailure("connector", err)
	}
	connectors := []*connector.Connector{}
	if err := pgxscan.Select(ctx, r.db, &connectors, query, args...); err != nil {
		return nil, core.StorageFailure("connector", err)
	}
	return connectors, nil
}

func (r *ConnectorRepo) Update(ctx context.Context, c *connector.Connector) (*connector.Connector, error) {
	query, args, err := sq.Update("connectors").
		Set("task_id", c.TaskID).
		Set("data_type", c.DataType).
		Set("kind", c.Kind).
		Set("from_email", c.FromEmail).
		Set("email", c.Email).
		Set("subject", c.Subject).
		Set("service_kind", c.ServiceKind).
		Set("endpoint", c.Endpoint).
		Set("response_tag", c.ResponseTag).
		Set("database_kind", c.DatabaseKind).
		Set("connection_string", c.ConnectionString).
		Set("query_kind", c.QueryKind).
		Set("query", c.Query).
		Set("queue_path", c.QueuePath).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING " + columnList(connectorColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("connector", err)
	}
	var updated connector.Connector
	if err := pgxscan.Get(ctx, r.db, &updated, query, args...); err != nil {
		return nil, wrapGetErr("connector", fmt.Sprintf("connector %s not found", c.ID), err)
	}
	return &updated, nil
}

func (r *ConnectorRepo) Delete(ctx context.Context, id core.ID) (*connector.Connector, error) {
	query, args, err := sq.Delete("connectors").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(connectorColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("connector", err)
	}
	var deleted connector.Connector
	if err := pgxscan.Get(ctx, r.db, &deleted, query, args...); err != nil {
		return nil, wrapGetErr("connector", fmt.Sprintf("connector %s not found", id), err)
	}
	return &deleted, nil
}
