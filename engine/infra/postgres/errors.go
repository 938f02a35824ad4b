package postgres

import (
	"errors"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// wrapGetErr translates a read failure into a domain error: missing rows
// become NotFound, anything else an opaque storage failure.
func wrapGetErr(entity, detail string, err error) error {
	if pgxscan.NotFound(err) || errors.Is(err, pgx.ErrNoRows) {
		return core.NotFoundf(entity, "%s", detail)
	}
	return core.StorageFailure(entity, err)
}

// columnList joins column names for RETURNING clauses.
func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}

// wrapWriteErr translates a write failure into a domain error, surfacing
// unique constraint violations as Conflict.
func wrapWriteErr(entity string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return core.Conflictf(entity, "duplicate %s: %s", entity, pgErr.ConstraintName)
	}
	return core.StorageFailure(entity, err)
}
