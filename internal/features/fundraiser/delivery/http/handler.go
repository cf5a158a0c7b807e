package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamraiser-backend/internal/common/httputil"
	"streamraiser-backend/internal/common/middleware"
	"streamraiser-backend/internal/features/fundraiser/models"
	"streamraiser-backend/internal/features/fundraiser/service"
)

type FundraiserHandler struct {
	service service.FundraiserService
}

func NewFundraiserHandler(service service.FundraiserService) *FundraiserHandler {
	return &FundraiserHandler{service: service}
}

func (h *FundraiserHandler) RegisterRoutes(router *gin.RouterGroup) {
	fundraisers := router.Group("/fundraisers")
	{
		fundraisers.GET("/:id", h.get)
		fundraisers.POST("/:id/donation", h.donate)

		authed := fundraisers.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("", h.create)
			authed.PATCH("/:id", h.update)
			authed.DELETE("/:id", h.delete)
		}
	}
}

type donationRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// @Summary Join event as fundraiser
// @Description Create a fundraiser page for the authenticated user. One fundraiser per user per event; the avatar color cycles through the palette by join order.
// @Tags fundraisers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.FundraiserCreate true "Fundraiser"
// @Success 201 {object} models.FundraiserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Event not found"
// @Failure 409 {object} map[string]string "Already joined"
// @Router /fundraisers [post]
func (h *FundraiserHandler) create(c *gin.Context) {
	var input models.FundraiserCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.service.Create(c.Request.Context(), middleware.UserFromContext(c), &input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Summary Get fundraiser
// @Description Fundraiser page data with its full redeem collection embedded.
// @Tags fundraisers
// @Produce json
// @Param id path string true "Fundraiser ID"
// @Success 200 {object} models.FundraiserResponse
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id} [get]
func (h *FundraiserHandler) get(c *gin.Context) {
	f, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary Update fundraiser
// @Description Patch fundraiser fields. Owner or admin only.
// @Tags fundraisers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fundraiser ID"
// @Param input body models.FundraiserUpdate true "Fields to update"
// @Success 200 {object} models.Fundraiser
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id} [patch]
func (h *FundraiserHandler) update(c *gin.Context) {
	var input models.FundraiserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.service.Update(c.Request.Context(), c.Param("id"), middleware.UserFromContext(c), &input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary Delete fundraiser
// @Description Remove a fundraiser and its redeem collection. Owner or admin only.
// @Tags fundraisers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fundraiser ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id} [delete]
func (h *FundraiserHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.UserFromContext(c)); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Record donation
// @Description Add a donation amount to the fundraiser's raised total. Public endpoint.
// @Tags fundraisers
// @Accept json
// @Produce json
// @Param id path string true "Fundraiser ID"
// @Param request body donationRequest true "Donation"
// @Success 200 {object} map[string]int "New raised total"
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id}/donation [post]
func (h *FundraiserHandler) donate(c *gin.Context) {
	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raised, err := h.service.Donate(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"raised": raised})
}
