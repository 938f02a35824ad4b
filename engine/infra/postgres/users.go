package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/integraph/integraph/engine/auth"
	"github.com/integraph/integraph/engine/core"
)

var userColumns = []string{"id", "username", "password_hash", "created_at"}

// UserRepo implements auth.Repository on postgres.
type UserRepo struct {
	db DB
}

func NewUserRepo(db DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *auth.User) (*auth.User, error) {
	query, args, err := sq.Insert("users").
		Columns("username", "password_hash").
		Values(u.Username, u.PasswordHash).
		Suffix("RETURNING " + columnList(userColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("user", err)
	}
	var created auth.User
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, wrapWriteErr("user", err)
	}
	return &created, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, core.StorageFailure("user", err)
	}
	var u auth.User
	if err := pgxscan.Get(ctx, r.db, &u, query, args...); err != nil {
		return nil, wrapGetErr("user", fmt.Sprintf("user %q not found", username), err)
	}
	return &u, nil
}
