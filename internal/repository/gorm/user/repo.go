package usergorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/lessons-api/internal/db"
	"github.com/oggyb/lessons-api/internal/domain/user"
)

// Repository is a GORM-backed implementation of user.Repository.
type Repository struct {
	db *gorm.DB
}

func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Save inserts a new account. The unique index on email is reported as
// user.ErrEmailTaken.
func (r *Repository) Save(ctx context.Context, u *user.User) error {
	m := fromDomain(u)
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrEmailTaken
	}
	if err != nil {
		return err
	}
	u.ID = m.ID
	return nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", user.NormalizeEmail(email))
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) first(ctx context.Context, query string, args ...any) (*user.User, error) {
	var m UserModel

	err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func toDomain(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomain(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var _ user.Repository = (*Repository)(nil)
