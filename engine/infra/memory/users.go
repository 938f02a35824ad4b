package memory

import (
	"context"

	"github.com/integraph/integraph/engine/auth"
	"github.com/integraph/integraph/engine/core"
)

type userRecord struct {
	user auth.User
}

type userRepo struct {
	s *Store
}

// Users returns the user repository view of the store.
func (s *Store) Users() auth.Repository { return &userRepo{s} }

func (r *userRepo) Create(_ context.Context, u *auth.User) (*auth.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Username]; ok {
		return nil, core.Conflictf("user", "username %q is taken", u.Username)
	}
	stored := *u
	stored.ID = r.s.newID()
	r.s.users[stored.Username] = &userRecord{user: stored}
	out := stored
	return &out, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	record, ok := r.s.users[username]
	if !ok {
		return nil, core.NotFoundf("user", "user %q not found", username)
	}
	out := record.user
	return &out, nil
}
