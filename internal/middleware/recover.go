package middleware

import (
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/logger"
	"github.com/oggyb/lessons-api/internal/response"
)

// Recoverer turns a panic in a handler into a logged 500 failure envelope.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	log = logger.OrNop(log).Named("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// net/http uses this value to abort a response on purpose.
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
					zap.Stack("stack"),
				)
				response.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
