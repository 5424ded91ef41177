package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/logger"
)

// RequestLogger logs basic information about each HTTP request,
// including method, route, status, remote address and how long it took to serve.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	log = logger.OrNop(log).Named("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := statusOf(ww)
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", routePattern(r)),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Duration("elapsed", time.Since(start)),
			}
			if id := chimiddleware.GetReqID(r.Context()); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("request served", fields...)
			case status >= http.StatusBadRequest:
				log.Warn("request served", fields...)
			default:
				log.Info("request served", fields...)
			}
		})
	}
}

// statusOf returns the written status, which is 200 when the handler never
// called WriteHeader.
func statusOf(ww chimiddleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

// routePattern returns the matched chi pattern, e.g. /api/v1/lessons/{id},
// so that labels and log fields stay bounded. Unmatched requests map to
// "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
