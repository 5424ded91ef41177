package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/lessons-api/internal/auth"
	"github.com/oggyb/lessons-api/internal/domain/user"
	"github.com/oggyb/lessons-api/internal/repository/memory"
)

// fakeIssuer records the user ids it signed tokens for.
type fakeIssuer struct {
	issued []uuid.UUID
	err    error
}

func (f *fakeIssuer) Issue(id uuid.UUID) (auth.Token, error) {
	if f.err != nil {
		return auth.Token{}, f.err
	}
	f.issued = append(f.issued, id)
	return auth.Token{Value: "token-" + id.String(), ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func newAuthService(t *testing.T) (AuthService, *memory.UserRepository, *fakeIssuer) {
	t.Helper()

	users := memory.NewUserRepository()
	issuer := &fakeIssuer{}
	return NewAuthService(users, auth.NewBcryptHasher(4), issuer, nil), users, issuer
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, users, issuer := newAuthService(t)
	ctx := context.Background()

	u, tok, err := svc.Register(ctx, "Ada", " Ada@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.Equal(t, "token-"+u.ID.String(), tok.Value)

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)

	tok, err = svc.Login(ctx, "ADA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "token-"+u.ID.String(), tok.Value)
	assert.Len(t, issuer.issued, 2)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ada", "ada@example.com", "password1")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Other", "ada@example.com", "password2")
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestAuthService_RegisterInvalid(t *testing.T) {
	svc, _, issuer := newAuthService(t)

	_, _, err := svc.Register(context.Background(), "", "ada@example.com", "password1")
	assert.ErrorIs(t, err, user.ErrEmptyName)
	assert.Empty(t, issuer.issued)
}

func TestAuthService_LoginRejects(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ada", "ada@example.com", "password1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "ada@example.com", "password2"},
		{"unknown email", "bob@example.com", "password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_LoginRepositoryError(t *testing.T) {
	svc, users, _ := newAuthService(t)
	users.Err = errors.New("db down")

	_, err := svc.Login(context.Background(), "ada@example.com", "password1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Me(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "Ada", "ada@example.com", "password1")
	require.NoError(t, err)

	got, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrNotFound)
}
