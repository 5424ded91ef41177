package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/domain/lesson"
	"github.com/oggyb/lessons-api/internal/logger"
	"github.com/oggyb/lessons-api/internal/request"
	"github.com/oggyb/lessons-api/internal/response"
	"github.com/oggyb/lessons-api/internal/service"
	"github.com/oggyb/lessons-api/internal/transform"
)

// LessonHandler exposes lessons over the v1 and v2 APIs.
type LessonHandler struct {
	svc         service.LessonService
	transformer transform.Transformer
	workers     int
	log         *zap.Logger
}

// NewLessonHandler constructs a LessonHandler. workers bounds how many
// lessons of a collection are transformed at once.
func NewLessonHandler(svc service.LessonService, workers int, log *zap.Logger) *LessonHandler {
	return &LessonHandler{
		svc:         svc,
		transformer: transform.LessonTransformer{},
		workers:     workers,
		log:         logger.OrNop(log).Named("lessons"),
	}
}

// Index godoc
// @Summary     List lessons
// @Description Returns every lesson.
// @Tags        lessons-v1
// @Produce     json
// @Success     200 {object} response.LessonListResponse
// @Failure     500 {object} response.Failure
// @Router      /api/v1/lessons [get]
func (h *LessonHandler) Index(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	lessons, err := h.svc.All(r.Context())
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	shapes, err := transform.ParallelCollection(r.Context(), h.transformer, lesson.Records(lessons), h.workers)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	response.OK(b, shapes).Write(w)
}

// Page godoc
// @Summary     List lessons page by page
// @Description Returns one page of lessons with pagination metadata.
// @Tags        lessons-v2
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Success     200 {object} response.LessonPageResponse
// @Failure     400 {object} response.Failure
// @Failure     401 {object} response.Failure
// @Router      /api/v2/lessons [get]
func (h *LessonHandler) Page(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	p, err := h.svc.Page(r.Context(), page)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	shapes, err := transform.ParallelCollection(r.Context(), h.transformer, lesson.Records(p.Items), h.workers)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	meta := response.NewPagination(p.Total, len(shapes), p.PerPage, p.Page)
	response.Paginated(b, shapes, meta).Write(w)
}

// Show godoc
// @Summary     Get a lesson
// @Tags        lessons-v1
// @Produce     json
// @Param       id path int true "Lesson ID"
// @Success     200 {object} response.LessonResponse
// @Failure     404 {object} response.Failure
// @Router      /api/v1/lessons/{id} [get]
func (h *LessonHandler) Show(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	id, ok := lessonID(r)
	if !ok {
		b.NotFound("Lesson does not exist").Write(w)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	h.item(w, b, l)
}

// Store godoc
// @Summary     Create a lesson
// @Tags        lessons-v1
// @Accept      json
// @Produce     json
// @Param       request body request.LessonRequest true "Lesson"
// @Success     201 {object} response.LessonResponse
// @Failure     400 {object} response.Failure
// @Failure     422 {object} response.Failure
// @Router      /api/v1/lessons [post]
func (h *LessonHandler) Store(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	var req request.LessonRequest
	if err := request.Decode(r, &req); err != nil {
		fail(w, b, h.log, err)
		return
	}

	l, err := h.svc.Create(r.Context(), req.Title, req.Body, req.Free)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	h.item(w, b.SetStatusCode(http.StatusCreated), l)
}

// Update godoc
// @Summary     Update a lesson
// @Tags        lessons-v1
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Lesson ID"
// @Param       request body request.LessonRequest true "Lesson"
// @Success     200 {object} response.LessonResponse
// @Failure     404 {object} response.Failure
// @Failure     422 {object} response.Failure
// @Router      /api/v1/lessons/{id} [put]
func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	id, ok := lessonID(r)
	if !ok {
		b.NotFound("Lesson does not exist").Write(w)
		return
	}

	var req request.LessonRequest
	if err := request.Decode(r, &req); err != nil {
		fail(w, b, h.log, err)
		return
	}

	l, err := h.svc.Update(r.Context(), id, req.Title, req.Body, req.Free)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	h.item(w, b, l)
}

// Destroy godoc
// @Summary     Delete a lesson
// @Tags        lessons-v1
// @Param       id path int true "Lesson ID"
// @Success     204
// @Failure     404 {object} response.Failure
// @Router      /api/v1/lessons/{id} [delete]
func (h *LessonHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	id, ok := lessonID(r)
	if !ok {
		b.NotFound("Lesson does not exist").Write(w)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		fail(w, b, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LessonHandler) item(w http.ResponseWriter, b *response.Builder, l *lesson.Lesson) {
	reply, err := response.Item(b, h.transformer, l.Record())
	if err != nil {
		fail(w, b, h.log, err)
		return
	}
	reply.Write(w)
}

// lessonID parses the {id} URL parameter. Ids that cannot exist are
// reported as not found rather than as bad requests.
func lessonID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
