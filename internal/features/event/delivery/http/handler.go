package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamraiser-backend/internal/common/httputil"
	"streamraiser-backend/internal/common/middleware"
	"streamraiser-backend/internal/features/event/models"
	"streamraiser-backend/internal/features/event/service"
	fundraisermodels "streamraiser-backend/internal/features/fundraiser/models"
	fundraiserservice "streamraiser-backend/internal/features/fundraiser/service"
)

type EventHandler struct {
	service     service.EventService
	fundraisers fundraiserservice.FundraiserService
}

func NewEventHandler(service service.EventService, fundraisers fundraiserservice.FundraiserService) *EventHandler {
	return &EventHandler{service: service, fundraisers: fundraisers}
}

func (h *EventHandler) RegisterRoutes(router *gin.RouterGroup) {
	events := router.Group("/events")
	{
		events.GET("", h.list)
		events.GET("/:id", h.get)

		admin := events.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", h.create)
			admin.PATCH("/:id", h.update)
			admin.DELETE("/:id", h.delete)
		}
	}
}

type eventResponse struct {
	*models.Event
	Fundraisers []*fundraisermodels.Fundraiser `json:"fundraisers"`
}

// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {array} models.Event
// @Router /events [get]
func (h *EventHandler) list(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// @Summary Get event
// @Description Event details with its fundraisers embedded.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} eventResponse
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id} [get]
func (h *EventHandler) get(c *gin.Context) {
	e, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}

	fundraisers, err := h.fundraisers.ListByEvent(c.Request.Context(), e.ID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, eventResponse{Event: e, Fundraisers: fundraisers})
}

// @Summary Create event
// @Description Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.EventCreate true "Event"
// @Success 201 {object} models.Event
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /events [post]
func (h *EventHandler) create(c *gin.Context) {
	var input models.EventCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// @Summary Update event
// @Description Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param input body models.EventUpdate true "Fields to update"
// @Success 200 {object} models.Event
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id} [patch]
func (h *EventHandler) update(c *gin.Context) {
	var input models.EventUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.service.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary Delete event
// @Description Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id} [delete]
func (h *EventHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
