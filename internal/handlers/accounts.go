package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/SpyrosRoum/budgetman/internal/auth"
	dom "github.com/SpyrosRoum/budgetman/internal/domain"
	"github.com/SpyrosRoum/budgetman/internal/dto"
	"github.com/SpyrosRoum/budgetman/internal/service"
)

// AccountHandler handles account CRUD endpoints.
type AccountHandler struct {
	svc *service.AccountService
}

// NewAccountHandler returns a new AccountHandler.
func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// List godoc
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Param        type  query  string  false  "any | adhoc | normal"
// @Success      200  {array}  domain.Account
// @Failure      400  {object}  map[string]string
// @Router       /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	typ, ok := dom.ParseAccountType(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be any, adhoc or normal"})
		return
	}
	list, err := h.svc.List(c.Request.Context(), user.ID, typ)
	if err != nil {
		log.Error().Err(err).Msg("list accounts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch accounts"})
		return
	}
	if list == nil {
		list = []dom.Account{}
	}
	c.JSON(http.StatusOK, list)
}

// GetByID godoc
// @Summary      Get one account
// @Tags         accounts
// @Produce      json
// @Param        id  path  int  true  "Account ID"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  map[string]string
// @Router       /accounts/{id} [get]
func (h *AccountHandler) GetByID(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	account, err := h.svc.GetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
			return
		}
		log.Error().Err(err).Msg("get account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch account"})
		return
	}
	c.JSON(http.StatusOK, account)
}

// Create godoc
// @Summary      Create account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccountCreateRequest  true  "Account"
// @Success      201  {object}  dto.CreatedResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	var req dto.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.Create(c.Request.Context(), user.ID, req.Name, req.Description, req.StartingMoney, req.IsAdhoc)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingStarting), errors.Is(err, service.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "there already is an account with that name"})
		default:
			log.Error().Err(err).Msg("create account")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}
