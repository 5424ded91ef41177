package lesson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLesson(t *testing.T) {
	l, err := NewLesson("  Intro ", " Welcome ", true)
	require.NoError(t, err)

	assert.Equal(t, "Intro", l.Title)
	assert.Equal(t, "Welcome", l.Body)
	assert.True(t, l.Free)
	assert.False(t, l.CreatedAt.IsZero())
	assert.Equal(t, l.CreatedAt, l.UpdatedAt)
}

func TestNewLesson_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  error
	}{
		{"empty title", " ", "body", ErrEmptyTitle},
		{"empty body", "title", "", ErrEmptyBody},
		{"long title", strings.Repeat("a", MaxTitleLength+1), "body", ErrTitleTooLong},
		{"long multibyte title", strings.Repeat("é", MaxTitleLength+1), "body", ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLesson(tt.title, tt.body, false)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewLesson_MultibyteTitle(t *testing.T) {
	// 255 characters, 510 bytes.
	title := strings.Repeat("é", MaxTitleLength)

	l, err := NewLesson(title, "body", false)
	require.NoError(t, err)
	assert.Equal(t, title, l.Title)
}

func TestLesson_Record(t *testing.T) {
	l := &Lesson{ID: 3, Title: "t", Body: "b", Free: true}
	rec := l.Record()

	assert.Equal(t, uint64(3), rec["id"])
	assert.Equal(t, "t", rec["title"])
	assert.Equal(t, "b", rec["body"])
	assert.Equal(t, true, rec["free"])

	recs := Records([]*Lesson{l, {ID: 4}})
	require.Len(t, recs, 2)
	assert.Equal(t, uint64(4), recs[1]["id"])
}
