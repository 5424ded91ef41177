// Package memory provides map-backed repositories for tests and local runs
// without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oggyb/lessons-api/internal/domain/lesson"
)

// LessonRepository is a concurrency-safe in-memory lesson.Repository.
type LessonRepository struct {
	mu      sync.RWMutex
	nextID  uint64
	lessons map[uint64]lesson.Lesson

	// Err, when set, is returned by every method.
	Err error
}

func NewLessonRepository(seed ...*lesson.Lesson) *LessonRepository {
	r := &LessonRepository{lessons: make(map[uint64]lesson.Lesson)}
	for _, l := range seed {
		_ = r.Save(context.Background(), l)
	}
	return r
}

func (r *LessonRepository) List(ctx context.Context) ([]*lesson.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return r.sorted(), nil
}

func (r *LessonRepository) Paginate(ctx context.Context, page, perPage int) ([]*lesson.Lesson, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, 0, r.Err
	}

	all := r.sorted()
	start := (page - 1) * perPage
	if start >= len(all) || start < 0 {
		return []*lesson.Lesson{}, int64(len(all)), nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *LessonRepository) FindByID(ctx context.Context, id uint64) (*lesson.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, r.Err
	}
	l, ok := r.lessons[id]
	if !ok {
		return nil, lesson.ErrNotFound
	}
	return &l, nil
}

func (r *LessonRepository) Save(ctx context.Context, l *lesson.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	l.ID = r.nextID
	r.lessons[l.ID] = *l
	return nil
}

func (r *LessonRepository) Update(ctx context.Context, l *lesson.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.lessons[l.ID]; !ok {
		return lesson.ErrNotFound
	}
	r.lessons[l.ID] = *l
	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.lessons[id]; !ok {
		return lesson.ErrNotFound
	}
	delete(r.lessons, id)
	return nil
}

// sorted returns copies of all lessons ordered by id. Callers hold r.mu.
func (r *LessonRepository) sorted() []*lesson.Lesson {
	out := make([]*lesson.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ lesson.Repository = (*LessonRepository)(nil)
