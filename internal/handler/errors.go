package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/auth"
	"github.com/oggyb/lessons-api/internal/domain/lesson"
	"github.com/oggyb/lessons-api/internal/domain/user"
	"github.com/oggyb/lessons-api/internal/request"
	"github.com/oggyb/lessons-api/internal/response"
)

const internalErrorMessage = "internal server error"

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	var verr *request.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, request.ErrInvalidJSON):
		return http.StatusBadRequest
	case errors.Is(err, lesson.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lesson.ErrEmptyTitle),
		errors.Is(err, lesson.ErrEmptyBody),
		errors.Is(err, lesson.ErrTitleTooLong),
		errors.Is(err, user.ErrEmptyName),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooLong):
		return http.StatusUnprocessableEntity
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a failure envelope on b. Server errors are logged and
// replaced by a generic message.
func fail(w http.ResponseWriter, b *response.Builder, log *zap.Logger, err error) {
	status := statusFor(err)
	b.SetStatusCode(status)

	switch {
	case status == http.StatusNotFound:
		b.NotFound(notFoundMessage(err)).Write(w)
	case status >= http.StatusInternalServerError:
		log.Error("request failed", zap.Error(err))
		b.Error(internalErrorMessage).Write(w)
	default:
		b.Error(publicMessage(err)).Write(w)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, lesson.ErrNotFound):
		return "Lesson does not exist"
	case errors.Is(err, user.ErrNotFound):
		return "User does not exist"
	default:
		return ""
	}
}

// publicMessage strips the wrapping context added by lower layers so that
// clients only see the sentinel text.
func publicMessage(err error) string {
	var verr *request.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	for _, target := range []error{
		request.ErrInvalidJSON,
		lesson.ErrEmptyTitle,
		lesson.ErrEmptyBody,
		lesson.ErrTitleTooLong,
		user.ErrEmptyName,
		user.ErrInvalidEmail,
		user.ErrEmailTaken,
		auth.ErrInvalidCredentials,
		auth.ErrPasswordTooLong,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
