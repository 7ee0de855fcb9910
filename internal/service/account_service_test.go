package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpyrosRoum/budgetman/internal/cache"
	dom "github.com/SpyrosRoum/budgetman/internal/domain"
)

type fakeAccountRepo struct {
	accounts  []dom.Account
	nextID    int64
	listCalls int
}

func (r *fakeAccountRepo) List(_ context.Context, userID string, typ dom.AccountType) ([]dom.Account, error) {
	r.listCalls++
	var out []dom.Account
	for _, a := range r.accounts {
		if a.UserID != userID {
			continue
		}
		if typ == dom.AccountAdhoc && !a.IsAdhoc {
			continue
		}
		if typ == dom.AccountNormal && a.IsAdhoc {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, userID string, id int64) (dom.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return dom.Account{}, pgx.ErrNoRows
}

func (r *fakeAccountRepo) Create(_ context.Context, a dom.Account) (int64, error) {
	r.nextID++
	a.ID = r.nextID
	r.accounts = append(r.accounts, a)
	return a.ID, nil
}

func newTestBudgetCache(t *testing.T) *cache.BudgetCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewBudgetCache(rdb, time.Minute)
}

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

func TestAccountCreateNormal(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAccountService(repo, nil)

	id, err := svc.Create(context.Background(), "u1", "checking", sptr("daily"), fptr(100), false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	a := repo.accounts[0]
	assert.Equal(t, "daily", *a.Description)
	// Starting money seeds both balances.
	assert.Equal(t, 100.0, *a.AvailableMoney)
	assert.Equal(t, 100.0, *a.TotalMoney)
}

func TestAccountCreateNormalNeedsStartingMoney(t *testing.T) {
	svc := NewAccountService(&fakeAccountRepo{}, nil)

	_, err := svc.Create(context.Background(), "u1", "checking", nil, nil, false)
	assert.ErrorIs(t, err, ErrMissingStarting)
}

func TestAccountCreateAdhocDropsMoney(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAccountService(repo, nil)

	// Money and description are discarded for ad-hoc accounts.
	_, err := svc.Create(context.Background(), "u1", "pocket", sptr("ignored"), fptr(50), true)
	require.NoError(t, err)

	a := repo.accounts[0]
	assert.True(t, a.IsAdhoc)
	assert.Nil(t, a.Description)
	assert.Nil(t, a.AvailableMoney)
	assert.Nil(t, a.TotalMoney)
}

func TestAccountCreateBlankName(t *testing.T) {
	svc := NewAccountService(&fakeAccountRepo{}, nil)

	_, err := svc.Create(context.Background(), "u1", "   ", nil, fptr(1), false)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAccountListUsesCache(t *testing.T) {
	repo := &fakeAccountRepo{accounts: []dom.Account{
		{ID: 1, Name: "checking", UserID: "u1"},
	}}
	svc := NewAccountService(repo, newTestBudgetCache(t))

	first, err := svc.List(context.Background(), "u1", dom.AccountAny)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), "u1", dom.AccountAny)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestAccountListCachesEmptyResult(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAccountService(repo, newTestBudgetCache(t))

	// A user with no accounts must not hit the store on every list.
	for i := 0; i < 2; i++ {
		list, err := svc.List(context.Background(), "u1", dom.AccountAny)
		require.NoError(t, err)
		assert.Empty(t, list)
	}
	assert.Equal(t, 1, repo.listCalls)
}

func TestAccountCreateInvalidatesCache(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAccountService(repo, newTestBudgetCache(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "checking", nil, fptr(10), false)
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1", dom.AccountAny)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Create(ctx, "u1", "savings", nil, fptr(20), false)
	require.NoError(t, err)

	list, err = svc.List(ctx, "u1", dom.AccountAny)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAccountGetByIDNotFound(t *testing.T) {
	svc := NewAccountService(&fakeAccountRepo{}, nil)

	_, err := svc.GetByID(context.Background(), "u1", 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountGetByIDOtherUser(t *testing.T) {
	repo := &fakeAccountRepo{accounts: []dom.Account{
		{ID: 1, Name: "checking", UserID: "u1"},
	}}
	svc := NewAccountService(repo, nil)

	_, err := svc.GetByID(context.Background(), "u2", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
