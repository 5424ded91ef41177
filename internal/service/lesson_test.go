package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/lessons-api/internal/cache"
	rediscache "github.com/oggyb/lessons-api/internal/cache/redis"
	"github.com/oggyb/lessons-api/internal/domain/lesson"
	"github.com/oggyb/lessons-api/internal/repository/memory"
)

func seedLessons(t *testing.T, n int) []*lesson.Lesson {
	t.Helper()

	out := make([]*lesson.Lesson, n)
	for i := range out {
		l, err := lesson.NewLesson("Lesson", "Body", i%2 == 0)
		require.NoError(t, err)
		out[i] = l
	}
	return out
}

func newCachedLessonService(t *testing.T, repo lesson.Repository) (*miniredis.Miniredis, LessonService) {
	t.Helper()

	mr := miniredis.RunT(t)
	c := rediscache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	return mr, NewLessonService(repo, c, time.Minute, 10, nil)
}

func TestLessonService_Page(t *testing.T) {
	repo := memory.NewLessonRepository(seedLessons(t, 23)...)
	svc := NewLessonService(repo, nil, 0, 10, nil)
	ctx := context.Background()

	p, err := svc.Page(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, p.Items, 3)
	assert.Equal(t, int64(23), p.Total)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, uint64(21), p.Items[0].ID)

	// Pages below 1 fall back to the first page.
	p, err = svc.Page(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, p.Items, 10)

	// Past the end is an empty page, not an error.
	p, err = svc.Page(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
}

func TestLessonService_DefaultPerPage(t *testing.T) {
	repo := memory.NewLessonRepository(seedLessons(t, 12)...)
	svc := NewLessonService(repo, nil, 0, 0, nil)

	p, err := svc.Page(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, p.PerPage)
	assert.Len(t, p.Items, 10)
}

func TestLessonService_CreateValidates(t *testing.T) {
	svc := NewLessonService(memory.NewLessonRepository(), nil, 0, 10, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "  ", "body", false)
	assert.ErrorIs(t, err, lesson.ErrEmptyTitle)

	l, err := svc.Create(ctx, " Intro ", "Welcome", true)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), l.ID)
	assert.Equal(t, "Intro", l.Title)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLessonService_GetUsesCache(t *testing.T) {
	repo := memory.NewLessonRepository(seedLessons(t, 1)...)
	mr, svc := newCachedLessonService(t, repo)
	ctx := context.Background()

	first, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lessons:1"))

	// With the repository failing, the cached copy is still served.
	repo.Err = errors.New("db down")

	second, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Free, second.Free)
	assert.Equal(t, first.ID, second.ID)
}

func TestLessonService_GetNotFound(t *testing.T) {
	_, svc := newCachedLessonService(t, memory.NewLessonRepository())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, lesson.ErrNotFound)
}

func TestLessonService_UpdateEvicts(t *testing.T) {
	repo := memory.NewLessonRepository(seedLessons(t, 1)...)
	mr, svc := newCachedLessonService(t, repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.Lessons.Key(1)))

	updated, err := svc.Update(ctx, 1, "Renamed", "New body", false)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, mr.Exists(cache.Lessons.Key(1)))

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestLessonService_Delete(t *testing.T) {
	repo := memory.NewLessonRepository(seedLessons(t, 1)...)
	mr, svc := newCachedLessonService(t, repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.False(t, mr.Exists(cache.Lessons.Key(1)))

	err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, lesson.ErrNotFound)
}

func TestLessonService_CorruptCacheEntry(t *testing.T) {
	repo := memory.NewLessonRepository(seedLessons(t, 1)...)
	mr, svc := newCachedLessonService(t, repo)

	require.NoError(t, mr.Set(cache.Lessons.Key(1), "{not json"))

	l, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), l.ID)

	// The bad entry is replaced by a fresh one.
	raw, err := mr.Get(cache.Lessons.Key(1))
	require.NoError(t, err)
	assert.Contains(t, raw, `"id":1`)
}

func TestLessonService_CacheDownDoesNotFail(t *testing.T) {
	repo := memory.NewLessonRepository(seedLessons(t, 1)...)
	mr, svc := newCachedLessonService(t, repo)
	mr.Close()

	l, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), l.ID)
}
