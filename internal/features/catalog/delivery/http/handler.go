package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamraiser-backend/internal/common/httputil"
	"streamraiser-backend/internal/common/middleware"
	"streamraiser-backend/internal/features/catalog/models"
	"streamraiser-backend/internal/features/catalog/service"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	rewards := router.Group("/rewards")
	{
		rewards.GET("", h.list)
		rewards.GET("/:id", h.get)

		admin := rewards.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", h.create)
			admin.PATCH("/:id", h.update)
			admin.DELETE("/:id", h.delete)
		}
	}
}

// @Summary List reward templates
// @Description The full reward catalog, or a subset when ids is given.
// @Tags rewards
// @Produce json
// @Param ids query []string false "Restrict to these template ids" collectionFormat(multi)
// @Success 200 {array} models.RewardTemplate
// @Router /rewards [get]
func (h *CatalogHandler) list(c *gin.Context) {
	ids := c.QueryArray("ids")

	var (
		templates []*models.RewardTemplate
		err       error
	)
	if len(ids) > 0 {
		templates, err = h.service.ListByIDs(c.Request.Context(), ids)
	} else {
		templates, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// @Summary Get reward template
// @Tags rewards
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} models.RewardTemplate
// @Failure 404 {object} map[string]string "Template not found"
// @Router /rewards/{id} [get]
func (h *CatalogHandler) get(c *gin.Context) {
	t, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Create reward template
// @Description Admin only.
// @Tags rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.RewardTemplateCreate true "Template"
// @Success 201 {object} models.RewardTemplate
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /rewards [post]
func (h *CatalogHandler) create(c *gin.Context) {
	var input models.RewardTemplateCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary Update reward template
// @Description Admin only. Type and category are immutable.
// @Tags rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param input body models.RewardTemplateUpdate true "Fields to update"
// @Success 200 {object} models.RewardTemplate
// @Failure 404 {object} map[string]string "Template not found"
// @Router /rewards/{id} [patch]
func (h *CatalogHandler) update(c *gin.Context) {
	var input models.RewardTemplateUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Delete reward template
// @Description Admin only.
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /rewards/{id} [delete]
func (h *CatalogHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
