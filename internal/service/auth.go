package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/auth"
	"github.com/oggyb/lessons-api/internal/domain/user"
	"github.com/oggyb/lessons-api/internal/logger"
)

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (auth.Token, error)
}

type AuthService interface {
	// Register creates an account and returns it with a fresh token.
	Register(ctx context.Context, name, email, password string) (*user.User, auth.Token, error)
	// Login returns a token for valid credentials, or auth.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (auth.Token, error)
	// Me returns the account with the given id.
	Me(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type authService struct {
	users  user.Repository
	hasher auth.PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(
	users user.Repository,
	hasher auth.PasswordHasher,
	tokens TokenIssuer,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    logger.OrNop(log).Named("auth"),
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*user.User, auth.Token, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, auth.Token{}, err
	}

	u, err := user.NewUser(name, email, hash)
	if err != nil {
		return nil, auth.Token{}, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, auth.Token{}, fmt.Errorf("save user: %w", err)
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, auth.Token{}, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()))
	return u, tok, nil
}

// Login does not distinguish an unknown e-mail from a wrong password.
func (s *authService) Login(ctx context.Context, email, password string) (auth.Token, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return auth.Token{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.Token{}, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return auth.Token{}, fmt.Errorf("compare password: %w", err)
		}
		s.log.Debug("login rejected", zap.String("user_id", u.ID.String()))
		return auth.Token{}, auth.ErrInvalidCredentials
	}

	return s.tokens.Issue(u.ID)
}

func (s *authService) Me(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return u, nil
}
