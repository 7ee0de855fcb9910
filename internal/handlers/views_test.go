package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpyrosRoum/budgetman/internal/auth"
	dom "github.com/SpyrosRoum/budgetman/internal/domain"
)

// newViews wires the template-free view routes (form login, logout) over the
// same in-memory user store the API tests use.
func newViews(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()

	hash, err := auth.HashPassword("swordfish")
	require.NoError(t, err)
	users := &memUserStore{users: map[string]dom.User{
		"u1": {ID: "u1", Username: "alice", PasswordHash: hash},
	}}
	tokens, err := auth.NewTokenManager("views-test-secret", time.Hour)
	require.NoError(t, err)
	authSvc := auth.NewService(users, tokens)

	views := NewViewHandler(authSvc, nil, nil, int(tokens.TTL().Seconds()))
	r := gin.New()
	r.POST("/login", views.LoginForm)
	r.GET("/logout", views.Logout)
	return r, authSvc
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginFormSuccess(t *testing.T) {
	r, svc := newViews(t)

	w := postForm(r, "/login", url.Values{
		"username": {"alice"},
		"password": {"swordfish"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := findCookie(w, auth.CookieName)
	require.NotNil(t, cookie, "access token cookie not set")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	// The cookie carries a token the service itself accepts.
	user, err := svc.Resolve(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLoginFormWrongCredentials(t *testing.T) {
	r, _ := newViews(t)

	w := postForm(r, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Nil(t, findCookie(w, auth.CookieName))
}

func TestLoginFormMissingFields(t *testing.T) {
	r, _ := newViews(t)

	w := postForm(r, "/login", url.Values{"username": {"alice"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Nil(t, findCookie(w, auth.CookieName))
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _ := newViews(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookie := findCookie(w, auth.CookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
