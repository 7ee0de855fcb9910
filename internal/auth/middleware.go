package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"
)

// CookieName is the cookie carrying the access token on the HTML surface.
const CookieName = "access_token"

const contextKeyUser = "auth_user"

// UserFromContext returns the user resolved by RequireUser for this request.
func UserFromContext(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	user, ok := v.(dom.User)
	return user, ok
}

// FailureHandler renders an authentication failure for one surface. The
// choice of surface belongs to routing, not to the middleware.
type FailureHandler func(c *gin.Context, err error)

// FailJSON is the API surface: credential problems get a 400 JSON body,
// anything else is an internal error.
func FailJSON(c *gin.Context, err error) {
	if isCredentialError(err) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("authentication failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// FailRedirect is the HTML surface: credential problems send the browser to
// loginPath, anything else to the error page.
func FailRedirect(loginPath string) FailureHandler {
	return func(c *gin.Context, err error) {
		if isCredentialError(err) {
			c.Redirect(http.StatusSeeOther, loginPath)
		} else {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("authentication failed")
			c.Redirect(http.StatusSeeOther, "/500")
		}
		c.Abort()
	}
}

// RequireUser extracts an access token from the request, resolves it through
// svc, and stores the user in the gin context. On failure the request is
// aborted through onFailure. The request body is never touched.
func RequireUser(svc *Service, onFailure FailureHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c.Request)
		if err != nil {
			onFailure(c, err)
			return
		}
		user, err := svc.Resolve(c.Request.Context(), token)
		if err != nil {
			onFailure(c, err)
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// extractToken looks for a credential in fixed priority order: the
// Authorization bearer header first, the access_token cookie second.
func extractToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok && token != "" {
			return token, nil
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", ErrMissingCredentials
}

func isCredentialError(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrWrongCredentials)
}
