package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for accounts.
type Repository interface {
	// Save inserts a new account. Returns ErrEmailTaken on a duplicate e-mail.
	Save(ctx context.Context, u *User) error

	// FindByEmail returns the account with the given e-mail or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the account with the given id or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
