package transform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonRecord(title, body string, free any) Record {
	return Record{
		"id":         7,
		"title":      title,
		"body":       body,
		"free":       free,
		"created_at": "2017-03-01 10:00:00",
	}
}

func TestLessonTransformer_Transform(t *testing.T) {
	t.Parallel()

	shape, err := LessonTransformer{}.Transform(lessonRecord("Intro", "Welcome", 1))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"title":   "Intro",
		"content": "Welcome",
		"is_free": true,
	}, shape.Map())
	assert.Equal(t, []string{"title", "content", "is_free"}, shape.Keys())
}

func TestLessonTransformer_DropsUnlistedFields(t *testing.T) {
	t.Parallel()

	rec := lessonRecord("Intro", "Welcome", true)
	rec["secret"] = "do not leak"

	shape, err := LessonTransformer{}.Transform(rec)
	require.NoError(t, err)

	assert.Equal(t, 3, shape.Len())
	_, ok := shape.Get("secret")
	assert.False(t, ok)
	_, ok = shape.Get("body")
	assert.False(t, ok)
	_, ok = shape.Get("id")
	assert.False(t, ok)
}

func TestLessonTransformer_FreeCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		free any
		want bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"int one", 1, true},
		{"int zero", 0, false},
		{"int64 two", int64(2), true},
		{"float zero", 0.0, false},
		{"float half", 0.5, true},
		{"string one", "1", true},
		{"string zero", "0", false},
		{"empty string", "", false},
		{"string false is non-empty", "false", true},
		{"json number zero", json.Number("0"), false},
		{"json number one", json.Number("1"), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			shape, err := LessonTransformer{}.Transform(lessonRecord("t", "b", tt.free))
			require.NoError(t, err)
			got, _ := shape.Get("is_free")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLessonTransformer_MissingField(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"title", "body", "free"} {
		t.Run(field, func(t *testing.T) {
			t.Parallel()
			rec := lessonRecord("Intro", "Welcome", 1)
			delete(rec, field)

			_, err := LessonTransformer{}.Transform(rec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingField)

			var mfe *MissingFieldError
			require.ErrorAs(t, err, &mfe)
			assert.Equal(t, field, mfe.Field)
		})
	}
}

func TestShape_MarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	shape, err := LessonTransformer{}.Transform(lessonRecord("Intro", "Welcome", 1))
	require.NoError(t, err)

	b, err := json.Marshal(shape)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Intro","content":"Welcome","is_free":true}`, string(b))

	var empty Shape
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestShape_SetOverwritesInPlace(t *testing.T) {
	t.Parallel()

	var s Shape
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, s.Keys())
	v, _ := s.Get("a")
	assert.Equal(t, 3, v)
}

func TestCollection_Empty(t *testing.T) {
	t.Parallel()

	out, err := Collection(LessonTransformer{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestCollection_PreservesOrderAndLength(t *testing.T) {
	t.Parallel()

	records := make([]Record, 25)
	for i := range records {
		records[i] = lessonRecord(fmt.Sprintf("lesson %d", i), "body", i%2)
	}

	out, err := Collection(LessonTransformer{}, records)
	require.NoError(t, err)
	require.Len(t, out, len(records))

	for i, shape := range out {
		title, _ := shape.Get("title")
		assert.Equal(t, fmt.Sprintf("lesson %d", i), title)
		free, _ := shape.Get("is_free")
		assert.Equal(t, i%2 == 1, free)
	}
}

func TestCollection_PropagatesMissingField(t *testing.T) {
	t.Parallel()

	records := []Record{
		lessonRecord("a", "b", 1),
		{"title": "no body", "free": 0},
	}

	out, err := Collection(LessonTransformer{}, records)
	assert.Nil(t, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "record 1")
}

func TestParallelCollection_MatchesSequential(t *testing.T) {
	t.Parallel()

	records := make([]Record, 100)
	for i := range records {
		records[i] = lessonRecord(fmt.Sprintf("lesson %d", i), fmt.Sprintf("body %d", i), i%3)
	}

	want, err := Collection(LessonTransformer{}, records)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 4, 16, 200} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()
			got, err := ParallelCollection(context.Background(), LessonTransformer{}, records, workers)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParallelCollection_Error(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	boom := errors.New("boom")
	failing := Func(func(rec Record) (Shape, error) {
		calls.Add(1)
		if rec["fail"] == true {
			return Shape{}, boom
		}
		var s Shape
		s.Set("ok", true)
		return s, nil
	})

	records := []Record{{}, {}, {"fail": true}, {}}
	out, err := ParallelCollection(context.Background(), failing, records, 2)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
	assert.Positive(t, calls.Load())
}

func TestUserTransformer_HidesCredentials(t *testing.T) {
	t.Parallel()

	shape, err := UserTransformer{}.Transform(Record{
		"id":            "4c1f",
		"name":          "Ada",
		"email":         "ada@example.com",
		"password_hash": "$2a$10$...",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "email"}, shape.Keys())
	_, ok := shape.Get("password_hash")
	assert.False(t, ok)
}
