package repo

import (
	"context"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence. It satisfies both auth.UserStore and
// auth.BootstrapStore.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByID(ctx context.Context, id string) (dom.User, error)
	CountAdmins(ctx context.Context) (int64, error)
	Create(ctx context.Context, u dom.User) error
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByUsername returns the user with the given username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, admin FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Admin)
	return u, err
}

// GetByID returns the user with the given id.
func (r *PGUserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, admin FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Admin)
	return u, err
}

// CountAdmins returns the number of admin users.
func (r *PGUserRepo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE admin = TRUE`).Scan(&n)
	return n, err
}

// Create inserts a new user.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, admin) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Username, u.PasswordHash, u.Admin,
	)
	return err
}
