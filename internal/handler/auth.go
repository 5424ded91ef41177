package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/auth"
	"github.com/oggyb/lessons-api/internal/logger"
	"github.com/oggyb/lessons-api/internal/request"
	"github.com/oggyb/lessons-api/internal/response"
	"github.com/oggyb/lessons-api/internal/service"
	"github.com/oggyb/lessons-api/internal/transform"
)

// AuthHandler serves account registration, login and the current user.
type AuthHandler struct {
	svc service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		log: logger.OrNop(log).Named("auth"),
	}
}

// Register godoc
// @Summary     Register an account
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body request.RegisterRequest true "Account"
// @Success     201 {object} response.TokenResponse
// @Failure     409 {object} response.Failure
// @Failure     422 {object} response.Failure
// @Router      /api/v2/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	var req request.RegisterRequest
	if err := request.Decode(r, &req); err != nil {
		fail(w, b, h.log, err)
		return
	}

	_, tok, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	response.OK(b.SetStatusCode(http.StatusCreated), tokenPayload(tok)).Write(w)
}

// Login godoc
// @Summary     Exchange credentials for a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body request.LoginRequest true "Credentials"
// @Success     200 {object} response.TokenResponse
// @Failure     401 {object} response.Failure
// @Failure     422 {object} response.Failure
// @Router      /api/v2/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	var req request.LoginRequest
	if err := request.Decode(r, &req); err != nil {
		fail(w, b, h.log, err)
		return
	}

	tok, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	response.OK(b, tokenPayload(tok)).Write(w)
}

// Info godoc
// @Summary     Current user
// @Description Returns the authenticated account. A refreshed token is sent
// @Description in the Authorization response header.
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.UserResponse
// @Failure     401 {object} response.Failure
// @Router      /api/v2/user/info [get]
func (h *AuthHandler) Info(w http.ResponseWriter, r *http.Request) {
	b := response.NewBuilder()

	id, ok := auth.UserIDFrom(r.Context())
	if !ok {
		b.SetStatusCode(http.StatusUnauthorized).Error(auth.ErrMissingToken.Error()).Write(w)
		return
	}

	u, err := h.svc.Me(r.Context(), id)
	if err != nil {
		fail(w, b, h.log, err)
		return
	}

	reply, err := response.Item(b, transform.UserTransformer{}, u.Record())
	if err != nil {
		fail(w, b, h.log, err)
		return
	}
	reply.Write(w)
}

func tokenPayload(tok auth.Token) response.TokenPayload {
	return response.TokenPayload{
		Token:     tok.Value,
		TokenType: "bearer",
		ExpiresAt: tok.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
