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

// TagHandler handles tag CRUD endpoints.
type TagHandler struct {
	svc *service.TagService
}

// NewTagHandler returns a new TagHandler.
func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// List godoc
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Success      200  {array}  domain.Tag
// @Router       /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	list, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("list tags")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tags"})
		return
	}
	if list == nil {
		list = []dom.Tag{}
	}
	c.JSON(http.StatusOK, list)
}

// GetByID godoc
// @Summary      Get one tag
// @Tags         tags
// @Produce      json
// @Param        id  path  int  true  "Tag ID"
// @Success      200  {object}  domain.Tag
// @Failure      404  {object}  map[string]string
// @Router       /tags/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tag, err := h.svc.GetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
			return
		}
		log.Error().Err(err).Msg("get tag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tag"})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Create godoc
// @Summary      Create tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TagCreateRequest  true  "Tag"
// @Success      201  {object}  dto.CreatedResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	user, _ := auth.UserFromContext(c)
	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.Create(c.Request.Context(), user.ID, req.Name, req.Description, req.Limit, req.StartingMoney)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "there already is a tag with that name"})
		default:
			log.Error().Err(err).Msg("create tag")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}
