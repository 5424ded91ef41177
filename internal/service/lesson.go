package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/cache"
	"github.com/oggyb/lessons-api/internal/domain/lesson"
	"github.com/oggyb/lessons-api/internal/logger"
)

// LessonPage is one page of lessons.
type LessonPage struct {
	Items   []*lesson.Lesson
	Total   int64
	Page    int
	PerPage int
}

type LessonService interface {
	All(ctx context.Context) ([]*lesson.Lesson, error)
	Page(ctx context.Context, page int) (LessonPage, error)
	Get(ctx context.Context, id uint64) (*lesson.Lesson, error)
	Create(ctx context.Context, title, body string, free bool) (*lesson.Lesson, error)
	Update(ctx context.Context, id uint64, title, body string, free bool) (*lesson.Lesson, error)
	Delete(ctx context.Context, id uint64) error
}

type lessonService struct {
	repo    lesson.Repository
	cache   cache.Cache
	ttl     time.Duration
	perPage int
	log     *zap.Logger
}

// NewLessonService creates a lesson service. cache may be nil to disable
// caching of single-lesson lookups.
func NewLessonService(
	repo lesson.Repository,
	c cache.Cache,
	ttl time.Duration,
	perPage int,
	log *zap.Logger,
) LessonService {
	// Apply sane defaults if config values are missing or invalid.
	if perPage <= 0 {
		perPage = 10
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &lessonService{
		repo:    repo,
		cache:   c,
		ttl:     ttl,
		perPage: perPage,
		log:     logger.OrNop(log).Named("lessons"),
	}
}

func (s *lessonService) All(ctx context.Context) ([]*lesson.Lesson, error) {
	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// Page returns the requested page; pages below 1 are treated as 1.
func (s *lessonService) Page(ctx context.Context, page int) (LessonPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.repo.Paginate(ctx, page, s.perPage)
	if err != nil {
		return LessonPage{}, fmt.Errorf("paginate lessons: %w", err)
	}

	return LessonPage{Items: items, Total: total, Page: page, PerPage: s.perPage}, nil
}

// Get looks the lesson up in the cache first and falls back to the
// repository. Cache failures are logged and never fail the request.
func (s *lessonService) Get(ctx context.Context, id uint64) (*lesson.Lesson, error) {
	if l, ok := s.cached(ctx, id); ok {
		return l, nil
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find lesson %d: %w", id, err)
	}

	s.store(ctx, l)
	return l, nil
}

func (s *lessonService) Create(ctx context.Context, title, body string, free bool) (*lesson.Lesson, error) {
	l, err := lesson.NewLesson(title, body, free)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save lesson: %w", err)
	}

	s.log.Info("lesson created", zap.Uint64("id", l.ID))
	return l, nil
}

func (s *lessonService) Update(ctx context.Context, id uint64, title, body string, free bool) (*lesson.Lesson, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find lesson %d: %w", id, err)
	}
	if err := l.Change(title, body, free); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update lesson %d: %w", id, err)
	}

	s.evict(ctx, id)
	return l, nil
}

func (s *lessonService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete lesson %d: %w", id, err)
	}

	s.evict(ctx, id)
	s.log.Info("lesson deleted", zap.Uint64("id", id))
	return nil
}

// cachedLesson is the JSON form of a lesson stored in the cache.
type cachedLesson struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Free      bool      `json:"free"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *lessonService) cached(ctx context.Context, id uint64) (*lesson.Lesson, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, cache.Lessons.Key(id))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("cache lookup failed", zap.Uint64("id", id), zap.Error(err))
		}
		return nil, false
	}

	var c cachedLesson
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.log.Warn("discarding unreadable cache entry", zap.Uint64("id", id), zap.Error(err))
		s.evict(ctx, id)
		return nil, false
	}

	return &lesson.Lesson{
		ID:        c.ID,
		Title:     c.Title,
		Body:      c.Body,
		Free:      c.Free,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, true
}

func (s *lessonService) store(ctx context.Context, l *lesson.Lesson) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(cachedLesson{
		ID:        l.ID,
		Title:     l.Title,
		Body:      l.Body,
		Free:      l.Free,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	})
	if err != nil {
		s.log.Warn("encode lesson for cache", zap.Uint64("id", l.ID), zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, cache.Lessons.Key(l.ID), string(raw), s.ttl); err != nil {
		s.log.Warn("cache store failed", zap.Uint64("id", l.ID), zap.Error(err))
	}
}

func (s *lessonService) evict(ctx context.Context, id uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cache.Lessons.Key(id)); err != nil {
		s.log.Warn("cache eviction failed", zap.Uint64("id", id), zap.Error(err))
	}
}
