package lesson

import "context"

// Repository defines the persistence operations for lessons.
//
// Lookups of a single lesson return ErrNotFound when the id does not exist.
type Repository interface {
	// List returns every lesson ordered by id.
	List(ctx context.Context) ([]*Lesson, error)

	// Paginate returns one page of lessons ordered by id, plus the total
	// number of lessons. Pages start at 1.
	Paginate(ctx context.Context, page, perPage int) ([]*Lesson, int64, error)

	// FindByID returns the lesson with the given id.
	FindByID(ctx context.Context, id uint64) (*Lesson, error)

	// Save inserts a new lesson and assigns its id.
	Save(ctx context.Context, l *Lesson) error

	// Update persists the editable fields of an existing lesson.
	Update(ctx context.Context, l *Lesson) error

	// Delete removes the lesson with the given id.
	Delete(ctx context.Context, id uint64) error
}
