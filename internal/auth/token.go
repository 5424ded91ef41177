// Package auth issues and verifies the bearer tokens of the v2 API and
// hashes account passwords.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oggyb/lessons-api/internal/cache"
)

// MinSecretLength is the shortest accepted HMAC signing secret.
const MinSecretLength = 32

// Claims are the verified contents of a token.
type Claims struct {
	UserID    uuid.UUID
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token is a signed token and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type jwtClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService signs tokens with HMAC-SHA256.
//
// An access token is valid for ttl. Within refreshTTL of being issued it can
// be exchanged for a new token, after which the old one is revoked.
type TokenService struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
	revoked    cache.Cache
	now        func() time.Time
}

// NewTokenService validates the secret and lifetimes. revoked may be nil, in
// which case refreshed tokens are not tracked.
func NewTokenService(secret string, ttl, refreshTTL time.Duration, revoked cache.Cache) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if refreshTTL < ttl {
		refreshTTL = ttl
	}

	return &TokenService{
		secret:     []byte(secret),
		ttl:        ttl,
		refreshTTL: refreshTTL,
		revoked:    revoked,
		now:        time.Now,
	}, nil
}

// WithClock replaces the time source. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a new access token for userID.
func (s *TokenService) Issue(userID uuid.UUID) (Token, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	claims := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Validate verifies the signature and expiry of an access token.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if err := s.checkRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	return toClaims(claims), nil
}

// Refresh exchanges a token, expired or not, for a new one as long as it was
// issued less than refreshTTL ago. The old token is revoked.
func (s *TokenService) Refresh(ctx context.Context, tokenString string) (Token, *Claims, error) {
	claims, err := s.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return Token{}, nil, ErrInvalidToken
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return Token{}, nil, ErrInvalidToken
	}

	now := s.now()
	refreshUntil := claims.IssuedAt.Add(s.refreshTTL)
	if !now.Before(refreshUntil) {
		return Token{}, nil, ErrRefreshExpired
	}

	// Claiming the blacklist slot is the revocation check, so of several
	// concurrent exchanges of one token only the first wins.
	if s.revoked != nil && claims.ID != "" {
		key := cache.TokenBlacklist.Key(claims.ID)
		claimed, err := s.revoked.SetIfAbsent(ctx, key, claims.UserID.String(), refreshUntil.Sub(now))
		if err != nil {
			return Token{}, nil, fmt.Errorf("revoke refreshed token: %w", err)
		}
		if !claimed {
			return Token{}, nil, ErrRevokedToken
		}
	}

	next, err := s.Issue(claims.UserID)
	if err != nil {
		return Token{}, nil, err
	}
	return next, toClaims(claims), nil
}

func (s *TokenService) parse(tokenString string, opts ...jwt.ParserOption) (*jwtClaims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.now),
	)

	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *TokenService) checkRevoked(ctx context.Context, id string) error {
	if s.revoked == nil || id == "" {
		return nil
	}
	_, err := s.revoked.Get(ctx, cache.TokenBlacklist.Key(id))
	switch {
	case err == nil:
		return ErrRevokedToken
	case errors.Is(err, cache.ErrMiss):
		return nil
	default:
		return fmt.Errorf("check token revocation: %w", err)
	}
}

func toClaims(c *jwtClaims) *Claims {
	out := &Claims{UserID: c.UserID, ID: c.ID}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
