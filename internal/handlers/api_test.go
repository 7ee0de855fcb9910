package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/SpyrosRoum/budgetman/internal/auth"
	dom "github.com/SpyrosRoum/budgetman/internal/domain"
	"github.com/SpyrosRoum/budgetman/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUserStore struct {
	users map[string]dom.User
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (dom.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (s *memUserStore) GetByID(_ context.Context, id string) (dom.User, error) {
	u, ok := s.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

type memAccountRepo struct {
	accounts []dom.Account
	nextID   int64
}

func (r *memAccountRepo) List(_ context.Context, userID string, typ dom.AccountType) ([]dom.Account, error) {
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

func (r *memAccountRepo) GetByID(_ context.Context, userID string, id int64) (dom.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return dom.Account{}, pgx.ErrNoRows
}

func (r *memAccountRepo) Create(_ context.Context, a dom.Account) (int64, error) {
	r.nextID++
	a.ID = r.nextID
	r.accounts = append(r.accounts, a)
	return a.ID, nil
}

type memTagRepo struct {
	tags   []dom.Tag
	nextID int64
}

func (r *memTagRepo) List(_ context.Context, userID string) ([]dom.Tag, error) {
	var out []dom.Tag
	for _, t := range r.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTagRepo) GetByID(_ context.Context, userID string, id int64) (dom.Tag, error) {
	for _, t := range r.tags {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return dom.Tag{}, pgx.ErrNoRows
}

func (r *memTagRepo) Create(_ context.Context, t dom.Tag) (int64, error) {
	r.nextID++
	t.ID = r.nextID
	r.tags = append(r.tags, t)
	return t.ID, nil
}

// newAPI wires the JSON API routes over in-memory stores, mirroring app.Setup.
func newAPI(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()

	hash, err := auth.HashPassword("swordfish")
	require.NoError(t, err)
	users := &memUserStore{users: map[string]dom.User{
		"u1": {ID: "u1", Username: "alice", PasswordHash: hash},
	}}
	tokens, err := auth.NewTokenManager("api-test-secret", time.Hour)
	require.NoError(t, err)
	authSvc := auth.NewService(users, tokens)

	accountSvc := service.NewAccountService(&memAccountRepo{accounts: []dom.Account{
		{ID: 1, Name: "checking", UserID: "u1"},
		{ID: 2, Name: "hidden", UserID: "u2"},
	}}, nil)
	tagSvc := service.NewTagService(&memTagRepo{}, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	authHandler := NewAuthHandler(authSvc)
	api.POST("/login", authHandler.Login)

	protected := api.Group("", auth.RequireUser(authSvc, auth.FailJSON))
	protected.GET("/me", authHandler.Me)
	accountHandler := NewAccountHandler(accountSvc)
	protected.GET("/accounts", accountHandler.List)
	protected.GET("/accounts/:id", accountHandler.GetByID)
	protected.POST("/accounts", accountHandler.Create)
	tagHandler := NewTagHandler(tagSvc)
	protected.GET("/tags", tagHandler.List)
	protected.GET("/tags/:id", tagHandler.GetByID)
	protected.POST("/tags", tagHandler.Create)

	return r, authSvc
}

func loginToken(t *testing.T, svc *auth.Service) string {
	t.Helper()
	token, err := svc.Login(context.Background(), "alice", "swordfish")
	require.NoError(t, err)
	return token
}

func TestLoginSuccess(t *testing.T) {
	r, _ := newAPI(t)

	apitest.New().
		Handler(r).
		Post("/api/v1/login").
		JSON(`{"username": "alice", "password": "swordfish"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.access_token")).
		End()
}

func TestLoginWrongCredentials(t *testing.T) {
	r, _ := newAPI(t)

	// Wrong password and unknown user must answer identically.
	for _, body := range []string{
		`{"username": "alice", "password": "wrong"}`,
		`{"username": "bob", "password": "x"}`,
	} {
		apitest.New().
			Handler(r).
			Post("/api/v1/login").
			JSON(body).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.error", "wrong credentials provided")).
			End()
	}
}

func TestLoginMissingFields(t *testing.T) {
	r, _ := newAPI(t)

	apitest.New().
		Handler(r).
		Post("/api/v1/login").
		JSON(`{"username": "alice"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestProtectedWithoutToken(t *testing.T) {
	r, _ := newAPI(t)

	apitest.New().
		Handler(r).
		Get("/api/v1/accounts").
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "missing access token")).
		End()
}

func TestMe(t *testing.T) {
	r, svc := newAPI(t)

	apitest.New().
		Handler(r).
		Get("/api/v1/me").
		Header("Authorization", "Bearer "+loginToken(t, svc)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.username", "alice")).
		End()
}

func TestListAccountsScopedToUser(t *testing.T) {
	r, svc := newAPI(t)

	apitest.New().
		Handler(r).
		Get("/api/v1/accounts").
		Header("Authorization", "Bearer "+loginToken(t, svc)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		Assert(jsonpath.Equal("$[0].name", "checking")).
		End()
}

func TestListAccountsBadType(t *testing.T) {
	r, svc := newAPI(t)

	apitest.New().
		Handler(r).
		Get("/api/v1/accounts").
		Query("type", "weird").
		Header("Authorization", "Bearer "+loginToken(t, svc)).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestGetAccountOfOtherUser(t *testing.T) {
	r, svc := newAPI(t)

	apitest.New().
		Handler(r).
		Get("/api/v1/accounts/2").
		Header("Authorization", "Bearer "+loginToken(t, svc)).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestCreateNormalAccountWithoutMoney(t *testing.T) {
	r, svc := newAPI(t)

	apitest.New().
		Handler(r).
		Post("/api/v1/accounts").
		JSON(`{"name": "savings", "is_adhoc": false}`).
		Header("Authorization", "Bearer "+loginToken(t, svc)).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "normal account needs initial money")).
		End()
}

func TestCreateAndFetchTag(t *testing.T) {
	r, svc := newAPI(t)
	token := loginToken(t, svc)

	apitest.New().
		Handler(r).
		Post("/api/v1/tags").
		JSON(`{"name": "groceries", "limit": 300, "starting_money": 25}`).
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.id", float64(1))).
		End()

	apitest.New().
		Handler(r).
		Get("/api/v1/tags/1").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.name", "groceries")).
		Assert(jsonpath.Equal("$.balance", float64(25))).
		End()
}

func TestTokenFromCookie(t *testing.T) {
	r, svc := newAPI(t)

	apitest.New().
		Handler(r).
		Get("/api/v1/me").
		Cookie(auth.CookieName, loginToken(t, svc)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.username", "alice")).
		End()
}
