package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/lessons-api/internal/transform"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Ada ", " Ada@Example.COM ", "hash")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestNewUser_Invalid(t *testing.T) {
	_, err := NewUser("", "ada@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser("Ada", "not-an-email", "hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestUser_RecordThroughTransformer(t *testing.T) {
	u, err := NewUser("Ada", "ada@example.com", "secret-hash")
	require.NoError(t, err)

	shape, err := transform.UserTransformer{}.Transform(u.Record())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":    u.ID.String(),
		"name":  "Ada",
		"email": "ada@example.com",
	}, shape.Map())
}
