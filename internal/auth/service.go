package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"
)

var (
	// ErrWrongCredentials covers both an unknown username and a wrong
	// password so callers cannot enumerate accounts.
	ErrWrongCredentials = errors.New("wrong credentials provided")
	// ErrMissingCredentials means no token was presented at all.
	ErrMissingCredentials = errors.New("missing access token")
	// ErrInvalidCredentials is the single outward shape for every token
	// validation failure (bad signature, expired, malformed).
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the credential-store capability the service consumes.
// Lookups report a missing row with pgx.ErrNoRows.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByID(ctx context.Context, id string) (dom.User, error)
}

// Service orchestrates credential verification, token issuance, and
// per-request identity resolution.
type Service struct {
	users  UserStore
	tokens *TokenManager
}

// NewService returns a Service backed by the given store and token manager.
func NewService(users UserStore, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies username/password and mints an access token. An unknown
// username and a mismatched password both return ErrWrongCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrWrongCredentials
		}
		return "", fmt.Errorf("fetch user by username: %w", err)
	}
	ok, err := VerifyPassword(user.PasswordHash, password)
	if err != nil {
		// ErrCorruptHash: surface it loudly, never as a failed login.
		return "", fmt.Errorf("verify password for user %s: %w", user.ID, err)
	}
	if !ok {
		return "", ErrWrongCredentials
	}
	return s.tokens.Issue(user)
}

// Resolve verifies a presented token and loads the user it names. All token
// validation failures collapse into ErrInvalidCredentials; the specific
// reason is logged only. A token naming a user that no longer exists yields
// ErrWrongCredentials.
func (s *Service) Resolve(ctx context.Context, token string) (dom.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("access token rejected")
		return dom.User{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrWrongCredentials
		}
		return dom.User{}, fmt.Errorf("fetch user by id: %w", err)
	}
	return user, nil
}
