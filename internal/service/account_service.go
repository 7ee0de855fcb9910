package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"
	"github.com/SpyrosRoum/budgetman/internal/repo"
	"github.com/SpyrosRoum/budgetman/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/SpyrosRoum/budgetman/internal/cache"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNameTaken       = errors.New("name already taken")
	ErrMissingStarting = errors.New("normal account needs initial money")
	ErrNameRequired    = errors.New("name is required")
)

// AccountService handles account business logic.
type AccountService struct {
	repo  repo.AccountRepo
	cache *cache.BudgetCache
	sf    singleflight.Group
}

// NewAccountService creates an AccountService. If c is nil, caching is
// disabled.
func NewAccountService(r repo.AccountRepo, c *cache.BudgetCache) *AccountService {
	return &AccountService{repo: r, cache: c}
}

// Create inserts an account for the user. Ad-hoc accounts carry no money or
// description no matter what was submitted; normal accounts require a
// starting amount, which seeds both available and total money.
func (s *AccountService) Create(ctx context.Context, userID, name string, desc *string, starting *float64, isAdhoc bool) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNameRequired
	}

	a := dom.Account{Name: name, UserID: userID, IsAdhoc: isAdhoc}
	if !isAdhoc {
		if starting == nil {
			return 0, ErrMissingStarting
		}
		a.Description = desc
		a.AvailableMoney = starting
		a.TotalMoney = starting
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return 0, ErrNameTaken
		}
		return 0, err
	}
	s.invalidate(ctx, userID)
	return id, nil
}

// List returns the user's accounts, optionally filtered by type, serving from
// cache when possible. Concurrent misses for the same key are collapsed.
func (s *AccountService) List(ctx context.Context, userID string, typ dom.AccountType) ([]dom.Account, error) {
	if s.cache != nil {
		key := "accounts:" + userID + ":" + string(typ)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetAccounts(ctx, userID, typ); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, userID, typ)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetAccounts(ctx, userID, typ, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Account), nil
	}
	return s.repo.List(ctx, userID, typ)
}

// GetByID returns one of the user's accounts.
func (s *AccountService) GetByID(ctx context.Context, userID string, id int64) (dom.Account, error) {
	a, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Account{}, ErrNotFound
		}
		return dom.Account{}, err
	}
	return a, nil
}

func (s *AccountService) invalidate(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateAccounts(ctx, userID)
	}
}
