// Package user holds the account model used for API authentication.
package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/lessons-api/internal/transform"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an account with the e-mail already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEmptyName is returned when no display name is provided.
	ErrEmptyName = errors.New("user name is required")
	// ErrInvalidEmail is returned when the e-mail address cannot be parsed.
	ErrInvalidEmail = errors.New("user email is invalid")
)

// User is an API account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser constructs an account from an already hashed password.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail lower-cases and trims an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Record returns the account as a raw storage row.
func (u *User) Record() transform.Record {
	return transform.Record{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"created_at":    u.CreatedAt,
		"updated_at":    u.UpdatedAt,
	}
}
