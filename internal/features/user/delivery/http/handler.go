package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamraiser-backend/internal/common/middleware"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/me", h.me)
	}
}

// @Summary Current user
// @Description The account behind the session token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /users/me [get]
func (h *UserHandler) me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.UserFromContext(c))
}
