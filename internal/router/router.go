package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	swaggerHandler "github.com/swaggo/http-swagger"

	_ "github.com/oggyb/lessons-api/internal/docs" // swagger docs
	"github.com/oggyb/lessons-api/internal/response"
)

type AppDeps struct {
	Home    HomeHandler
	Lesson  LessonHandler
	Auth    AuthHandler
	Guard   AuthGuard
	Metrics http.Handler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type LessonHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Page(w http.ResponseWriter, r *http.Request)
	Show(w http.ResponseWriter, r *http.Request)
	Store(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Destroy(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Info(w http.ResponseWriter, r *http.Request)
}

// AuthGuard provides the jwt.auth and jwt.refresh middleware.
type AuthGuard interface {
	Authenticate(next http.Handler) http.Handler
	RefreshToken(next http.Handler) http.Handler
}

func Register(r chi.Router, d AppDeps) {
	r.Get("/", d.Home.Index)
	r.Get("/health", d.Home.Health)

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	//Swagger
	r.Get("/swagger/*", swaggerHandler.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			lessons := func(r chi.Router) {
				r.Get("/", d.Lesson.Index)
				r.Post("/", d.Lesson.Store)
				r.Get("/{id}", d.Lesson.Show)
				r.Put("/{id}", d.Lesson.Update)
				r.Patch("/{id}", d.Lesson.Update)
				r.Delete("/{id}", d.Lesson.Destroy)
			}
			r.Route("/lessons", lessons)
			r.Route("/lesson", lessons)
		})

		r.Route("/v2", func(r chi.Router) {
			r.Post("/user/register", d.Auth.Register)
			r.Post("/user/login", d.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(d.Guard.Authenticate)
				r.Get("/lessons", d.Lesson.Page)
				r.Get("/lessons/{id}", d.Lesson.Show)
				r.Get("/lesson/{id}", d.Lesson.Show)
			})

			r.Group(func(r chi.Router) {
				r.Use(d.Guard.RefreshToken)
				r.Get("/user/info", d.Auth.Info)
			})
		})
	})

	// Fallback handlers for undefined routes (404) and wrong methods (405)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NewBuilder().NotFound("route not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}
