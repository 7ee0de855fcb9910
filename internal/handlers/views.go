package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/SpyrosRoum/budgetman/internal/auth"
	dom "github.com/SpyrosRoum/budgetman/internal/domain"
	"github.com/SpyrosRoum/budgetman/internal/dto"
	"github.com/SpyrosRoum/budgetman/internal/service"
)

// ViewHandler serves the HTML surface. All pages share the services with the
// JSON API; only the rendering differs.
type ViewHandler struct {
	authSvc  *auth.Service
	accounts *service.AccountService
	tags     *service.TagService
	// cookieMaxAge mirrors the token TTL so the cookie dies with the token.
	cookieMaxAge int
}

// NewViewHandler returns a new ViewHandler.
func NewViewHandler(authSvc *auth.Service, accounts *service.AccountService, tags *service.TagService, cookieMaxAge int) *ViewHandler {
	return &ViewHandler{authSvc: authSvc, accounts: accounts, tags: tags, cookieMaxAge: cookieMaxAge}
}

// Index renders the landing page for a logged-in user.
func (h *ViewHandler) Index(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	c.HTML(http.StatusOK, "index.html", gin.H{"Username": user.Username})
}

// LoginPage renders the login form.
func (h *ViewHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// LoginForm handles the form-encoded login. On success it sets the
// access_token cookie (HttpOnly) and redirects home; any credential failure
// goes back to the form.
func (h *ViewHandler) LoginForm(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	token, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Debug().Err(err).Msg("form login rejected")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.SetCookie(auth.CookieName, token, h.cookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the access_token cookie. Tokens themselves stay valid until
// expiry; there is no server-side session to revoke.
func (h *ViewHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// AccountsPage renders the user's accounts.
func (h *ViewHandler) AccountsPage(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	list, err := h.accounts.List(c.Request.Context(), user.ID, dom.AccountAny)
	if err != nil {
		log.Error().Err(err).Msg("render accounts page")
		c.Redirect(http.StatusSeeOther, "/500")
		return
	}
	c.HTML(http.StatusOK, "accounts.html", gin.H{"Username": user.Username, "Accounts": list})
}

// TagsPage renders the user's tags.
func (h *ViewHandler) TagsPage(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	list, err := h.tags.List(c.Request.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("render tags page")
		c.Redirect(http.StatusSeeOther, "/500")
		return
	}
	c.HTML(http.StatusOK, "tags.html", gin.H{"Username": user.Username, "Tags": list})
}

// NotFound renders the 404 page for unknown HTML routes.
func (h *ViewHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", nil)
}

// ServerError renders the error page browsers are redirected to.
func (h *ViewHandler) ServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", nil)
}
