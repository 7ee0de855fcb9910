package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"
)

// BootstrapStore is the write capability EnsureAdmin needs on top of lookups.
type BootstrapStore interface {
	CountAdmins(ctx context.Context) (int64, error)
	Create(ctx context.Context, user dom.User) error
}

// EnsureAdmin inserts the default "admin" user when no admin row exists yet,
// so a fresh database is always reachable. Safe to run on every startup.
func EnsureAdmin(ctx context.Context, store BootstrapStore, password string) error {
	n, err := store.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	user := dom.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: hash,
		Admin:        true,
	}
	if err := store.Create(ctx, user); err != nil {
		return fmt.Errorf("insert default admin user: %w", err)
	}
	log.Info().Str("user_id", user.ID).Msg("created default admin user")
	return nil
}
