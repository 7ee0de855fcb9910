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

// TagService handles tag business logic.
type TagService struct {
	repo  repo.TagRepo
	cache *cache.BudgetCache
	sf    singleflight.Group
}

// NewTagService creates a TagService. If c is nil, caching is disabled.
func NewTagService(r repo.TagRepo, c *cache.BudgetCache) *TagService {
	return &TagService{repo: r, cache: c}
}

// Create inserts a tag for the user. The optional starting amount seeds the
// running balance.
func (s *TagService) Create(ctx context.Context, userID, name string, desc *string, limit, starting *float64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNameRequired
	}

	t := dom.Tag{Name: name, Description: desc, Limit: limit, UserID: userID}
	if starting != nil {
		t.Balance = *starting
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return 0, ErrNameTaken
		}
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateTags(ctx, userID)
	}
	return id, nil
}

// List returns the user's tags, serving from cache when possible.
func (s *TagService) List(ctx context.Context, userID string) ([]dom.Tag, error) {
	if s.cache != nil {
		key := "tags:" + userID
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetTags(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetTags(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Tag), nil
	}
	return s.repo.List(ctx, userID)
}

// GetByID returns one of the user's tags.
func (s *TagService) GetByID(ctx context.Context, userID string, id int64) (dom.Tag, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Tag{}, ErrNotFound
		}
		return dom.Tag{}, err
	}
	return t, nil
}
