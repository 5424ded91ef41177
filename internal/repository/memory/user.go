package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oggyb/lessons-api/internal/domain/user"
)

// UserRepository is a concurrency-safe in-memory user.Repository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User

	// Err, when set, is returned by every method.
	Err error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]user.User)}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, r.Err
	}
	email = user.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

var _ user.Repository = (*UserRepository)(nil)
