package auth

import (
	"context"
	"time"

	"github.com/integraph/integraph/engine/core"
	"golang.org/x/crypto/bcrypt"
)

// User is an authenticated principal. Only the bcrypt hash of the password
// is ever stored.
type User struct {
	ID           core.ID   `json:"id"       db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-"        db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SetPassword hashes and stores the password on the user.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Repository defines the data access operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
