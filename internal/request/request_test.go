package request

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantJSON   bool
		wantFields []string
	}{
		{
			name: "valid lesson",
			body: `{"title":"Intro","body":"Welcome","free":true}`,
		},
		{
			name:     "malformed",
			body:     `{"title":`,
			wantJSON: true,
		},
		{
			name:     "unknown field",
			body:     `{"title":"Intro","body":"Welcome","extra":1}`,
			wantJSON: true,
		},
		{
			name:       "missing body",
			body:       `{"title":"Intro"}`,
			wantFields: []string{"body"},
		},
		{
			name:       "title too long",
			body:       `{"title":"` + strings.Repeat("x", 256) + `","body":"b"}`,
			wantFields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))

			var req LessonRequest
			err := Decode(r, &req)

			switch {
			case tt.wantJSON:
				assert.ErrorIs(t, err, ErrInvalidJSON)
			case tt.wantFields != nil:
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantFields, verr.Fields())
			default:
				require.NoError(t, err)
				assert.Equal(t, LessonRequest{Title: "Intro", Body: "Welcome", Free: true}, req)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(&RegisterRequest{Name: "Ada", Email: "nope", Password: "short"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t,
		"email: must be a valid email address; password: must be at least 8 characters",
		verr.Error())
}

func TestValidate_Login(t *testing.T) {
	assert.NoError(t, Validate(&LoginRequest{Email: "ada@example.com", Password: "x"}))
	assert.Error(t, Validate(&LoginRequest{Email: "ada@example.com"}))
}
