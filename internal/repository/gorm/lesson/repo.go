package lessongorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/lessons-api/internal/db"
	"github.com/oggyb/lessons-api/internal/domain/lesson"
)

// Repository is a GORM-backed implementation of the lesson.Repository interface.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a lesson repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// List returns all lessons ordered by id.
func (r *Repository) List(ctx context.Context) ([]*lesson.Lesson, error) {
	var models []LessonModel

	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainMany(models), nil
}

// Paginate returns one page of lessons and the total count.
func (r *Repository) Paginate(ctx context.Context, page, perPage int) ([]*lesson.Lesson, int64, error) {
	var models []LessonModel
	var total int64

	query := r.db.WithContext(ctx).Model(&LessonModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	err := query.
		Order("id ASC").
		Limit(perPage).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

// FindByID returns a single lesson, or lesson.ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id uint64) (*lesson.Lesson, error) {
	var m LessonModel

	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lesson.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

// Save inserts a new lesson and copies the generated id back.
func (r *Repository) Save(ctx context.Context, l *lesson.Lesson) error {
	m := fromDomain(l)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	l.ID = m.ID
	return nil
}

// Update persists title, body and free for an existing lesson.
func (r *Repository) Update(ctx context.Context, l *lesson.Lesson) error {
	updates := map[string]interface{}{
		"title":      l.Title,
		"body":       l.Body,
		"free":       l.Free,
		"updated_at": l.UpdatedAt,
	}

	res := r.db.WithContext(ctx).
		Model(&LessonModel{}).
		Where("id = ?", l.ID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lesson.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a lesson.
func (r *Repository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&LessonModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lesson.ErrNotFound
	}
	return nil
}

// compile-time interface check
var _ lesson.Repository = (*Repository)(nil)
