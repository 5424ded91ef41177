package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds the size of JSON request bodies.
const maxBodyBytes = 1 << 20

// LessonRequest is the JSON body for creating or updating a lesson.
type LessonRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body"  validate:"required"`
	Free  bool   `json:"free"`
}

// RegisterRequest is the JSON body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
}

// LoginRequest is the JSON body for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ErrInvalidJSON is returned by Decode when the body cannot be parsed.
var ErrInvalidJSON = errors.New("invalid JSON body")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// bcrypt rejects passwords longer than 72 bytes, whatever their
	// character count.
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// Decode reads a JSON body into v and validates its struct tags.
// Parse failures wrap ErrInvalidJSON; validation failures are *ValidationError.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return Validate(v)
}

// Validate checks the struct tags of v.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &ValidationError{fields: verrs}
	}
	return err
}

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	fields validator.ValidationErrors
}

// Error returns a message safe to show to clients, e.g.
// "email: must be a valid email address; password: is required".
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.fields))
	for _, fe := range e.fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", jsonName(fe), tagMessage(fe)))
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the names of the failing fields.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	for i, fe := range e.fields {
		out[i] = jsonName(fe)
	}
	return out
}

func jsonName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "maxbytes":
		return "must be at most " + fe.Param() + " bytes"
	default:
		return "is invalid"
	}
}
