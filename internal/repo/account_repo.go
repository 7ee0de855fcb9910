package repo

import (
	"context"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepo provides account persistence. Every query is scoped to one
// user; rows belonging to other users are invisible.
type AccountRepo interface {
	List(ctx context.Context, userID string, typ dom.AccountType) ([]dom.Account, error)
	GetByID(ctx context.Context, userID string, id int64) (dom.Account, error)
	Create(ctx context.Context, a dom.Account) (int64, error)
}

// PGAccountRepo implements AccountRepo with Postgres.
type PGAccountRepo struct {
	db *pgxpool.Pool
}

// NewPGAccountRepo returns a new PGAccountRepo.
func NewPGAccountRepo(db *pgxpool.Pool) *PGAccountRepo {
	return &PGAccountRepo{db: db}
}

// List returns the user's accounts, optionally filtered to ad-hoc or normal.
func (r *PGAccountRepo) List(ctx context.Context, userID string, typ dom.AccountType) ([]dom.Account, error) {
	query := `
		SELECT id, name, description, available_money, total_money, user_id, is_adhoc
		FROM accounts WHERE user_id = $1`
	switch typ {
	case dom.AccountAdhoc:
		query += ` AND is_adhoc = TRUE`
	case dom.AccountNormal:
		query += ` AND is_adhoc = FALSE`
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Account
	for rows.Next() {
		var a dom.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.AvailableMoney,
			&a.TotalMoney, &a.UserID, &a.IsAdhoc); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetByID returns one of the user's accounts by id.
func (r *PGAccountRepo) GetByID(ctx context.Context, userID string, id int64) (dom.Account, error) {
	query := `
		SELECT id, name, description, available_money, total_money, user_id, is_adhoc
		FROM accounts WHERE id = $1 AND user_id = $2`
	var a dom.Account
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&a.ID, &a.Name, &a.Description, &a.AvailableMoney,
		&a.TotalMoney, &a.UserID, &a.IsAdhoc,
	)
	return a, err
}

// Create inserts a new account and returns its id.
func (r *PGAccountRepo) Create(ctx context.Context, a dom.Account) (int64, error) {
	query := `
		INSERT INTO accounts (name, description, available_money, total_money, user_id, is_adhoc)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		a.Name, a.Description, a.AvailableMoney, a.TotalMoney, a.UserID, a.IsAdhoc,
	).Scan(&id)
	return id, err
}
