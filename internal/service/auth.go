// Package service contains application services for authentication and notes.
package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/notegraph/notegraph/internal/crypto"
	"github.com/notegraph/notegraph/internal/errs"
	"github.com/notegraph/notegraph/internal/limiter"
	"github.com/notegraph/notegraph/internal/model"
	"github.com/notegraph/notegraph/internal/repository"
	"github.com/notegraph/notegraph/internal/token"
)

// AuthService defines registration and authentication operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	// Login applies rate-limiting and authenticates the user.
	Login(ctx context.Context, email, password, ip string) (model.Tokens, *model.User, error)
}

type registerInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	tokens   *token.Service
	lim      limiter.Limiter
	validate *validator.Validate
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:    users,
		tokens:   tokens,
		lim:      lim,
		validate: validator.New(),
	}
}

// Register creates a new user record with a per-user salt. The existence
// pre-check is an optimization only; the unique index on email makes the
// insert authoritative.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	in := registerInput{Name: name, Email: email, Password: password}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:       uid,
		Name:     name,
		Email:    email,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), salt),
		SaltAuth: salt,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login authenticates with rate limiting by (email, ip). An unknown email and
// a wrong password yield the same error.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (model.Tokens, *model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	if !allowed {
		return model.Tokens{}, nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		// Persistence failure, not a credential failure: propagate it and do
		// not count it against the (email, ip) pair.
		return model.Tokens{}, nil, err
	}
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		// Record failure; if threshold reached, report rate-limited.
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, nil, errs.ErrRateLimited
		}
		// Unknown email and wrong password are indistinguishable.
		return model.Tokens{}, nil, errs.ErrInvalidCredentials
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, u, nil
}
