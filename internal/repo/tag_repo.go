package repo

import (
	"context"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TagRepo provides tag persistence, scoped to one user per query.
type TagRepo interface {
	List(ctx context.Context, userID string) ([]dom.Tag, error)
	GetByID(ctx context.Context, userID string, id int64) (dom.Tag, error)
	Create(ctx context.Context, t dom.Tag) (int64, error)
}

// PGTagRepo implements TagRepo with Postgres.
type PGTagRepo struct {
	db *pgxpool.Pool
}

// NewPGTagRepo returns a new PGTagRepo.
func NewPGTagRepo(db *pgxpool.Pool) *PGTagRepo {
	return &PGTagRepo{db: db}
}

// List returns all of the user's tags.
func (r *PGTagRepo) List(ctx context.Context, userID string) ([]dom.Tag, error) {
	query := `
		SELECT id, name, description, spend_limit, balance, user_id
		FROM tags WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Tag
	for rows.Next() {
		var t dom.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Limit,
			&t.Balance, &t.UserID); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID returns one of the user's tags by id.
func (r *PGTagRepo) GetByID(ctx context.Context, userID string, id int64) (dom.Tag, error) {
	query := `
		SELECT id, name, description, spend_limit, balance, user_id
		FROM tags WHERE id = $1 AND user_id = $2`
	var t dom.Tag
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.Name, &t.Description, &t.Limit, &t.Balance, &t.UserID,
	)
	return t, err
}

// Create inserts a new tag and returns its id.
func (r *PGTagRepo) Create(ctx context.Context, t dom.Tag) (int64, error) {
	query := `
		INSERT INTO tags (name, description, spend_limit, balance, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		t.Name, t.Description, t.Limit, t.Balance, t.UserID,
	).Scan(&id)
	return id, err
}
