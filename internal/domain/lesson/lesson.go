// Package lesson holds the domain model and invariants for course lessons.
package lesson

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oggyb/lessons-api/internal/transform"
)

const (
	// MaxTitleLength is the maximum number of characters in a lesson title.
	MaxTitleLength = 255
)

var (
	// ErrNotFound is returned when no lesson exists for the requested id.
	ErrNotFound = errors.New("lesson not found")
	// ErrEmptyTitle is returned when no title is provided.
	ErrEmptyTitle = errors.New("lesson title is required")
	// ErrEmptyBody is returned when the lesson body is empty.
	ErrEmptyBody = errors.New("lesson body is required")
	// ErrTitleTooLong is returned when the title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("lesson title exceeds maximum length")
)

// Lesson is a single course lesson.
type Lesson struct {
	ID        uint64
	Title     string
	Body      string
	Free      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLesson constructs a lesson and enforces basic domain rules.
func NewLesson(title, body string, free bool) (*Lesson, error) {
	l := &Lesson{CreatedAt: time.Now()}
	if err := l.Change(title, body, free); err != nil {
		return nil, err
	}
	l.UpdatedAt = l.CreatedAt
	return l, nil
}

// Change replaces the editable fields after validating them.
func (l *Lesson) Change(title, body string, free bool) error {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if body == "" {
		return ErrEmptyBody
	}

	l.Title = title
	l.Body = body
	l.Free = free
	l.UpdatedAt = time.Now()
	return nil
}

// Record returns the lesson as a raw storage row.
func (l *Lesson) Record() transform.Record {
	return transform.Record{
		"id":         l.ID,
		"title":      l.Title,
		"body":       l.Body,
		"free":       l.Free,
		"created_at": l.CreatedAt,
		"updated_at": l.UpdatedAt,
	}
}

// Records maps lessons to raw rows, preserving order.
func Records(lessons []*Lesson) []transform.Record {
	out := make([]transform.Record, len(lessons))
	for i, l := range lessons {
		out[i] = l.Record()
	}
	return out
}
