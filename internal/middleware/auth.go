package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/auth"
	"github.com/oggyb/lessons-api/internal/logger"
	"github.com/oggyb/lessons-api/internal/response"
)

// TokenVerifier validates and refreshes bearer tokens.
type TokenVerifier interface {
	Validate(ctx context.Context, token string) (*auth.Claims, error)
	Refresh(ctx context.Context, token string) (auth.Token, *auth.Claims, error)
}

// AuthMiddleware protects the v2 routes with bearer tokens.
type AuthMiddleware struct {
	tokens TokenVerifier
	log    *zap.Logger
}

func NewAuthMiddleware(tokens TokenVerifier, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		log:    logger.OrNop(log).Named("auth"),
	}
}

// Authenticate rejects requests without a valid, unexpired token and stores
// the user id of accepted ones in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			m.reject(w, err)
			return
		}

		claims, err := m.tokens.Validate(r.Context(), token)
		if err != nil {
			m.reject(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), claims.UserID)))
	})
}

// RefreshToken exchanges the presented token, even an expired one, for a new
// token. The new token is sent back in the Authorization response header and
// the old one stops working.
func (m *AuthMiddleware) RefreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			m.reject(w, err)
			return
		}

		fresh, claims, err := m.tokens.Refresh(r.Context(), token)
		if err != nil {
			m.reject(w, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+fresh.Value)
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), claims.UserID)))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		response.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRefreshExpired),
		errors.Is(err, auth.ErrRevokedToken):
		response.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		m.log.Error("token verification failed", zap.Error(err))
		response.RespondError(w, http.StatusInternalServerError, "authentication error")
	}
}

// bearerToken reads the token from the Authorization header, falling back
// to the token query parameter.
func bearerToken(r *http.Request) (string, error) {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", auth.ErrInvalidToken
		}
		return token, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", auth.ErrMissingToken
}
