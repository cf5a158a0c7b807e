package seed

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamraiser-backend/internal/common/httputil"
	"streamraiser-backend/internal/common/middleware"
)

type Handler struct {
	seeder *Seeder
}

func NewHandler(seeder *Seeder) *Handler {
	return &Handler{seeder: seeder}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/seed", middleware.RequireAdmin(), h.seed)
}

// @Summary Seed demo data
// @Description Load the reward catalog presets and, when the store is empty, a demo event with fundraisers and starter redeems. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Seed result"
// @Router /seed [post]
func (h *Handler) seed(c *gin.Context) {
	result, err := h.seeder.Run(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": result})
}
