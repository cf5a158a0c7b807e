package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"streamraiser-backend/internal/common/httputil"
	"streamraiser-backend/internal/common/middleware"
	"streamraiser-backend/internal/features/redeem/engine"
	"streamraiser-backend/internal/features/redeem/models"
	"streamraiser-backend/internal/features/redeem/query"
	"streamraiser-backend/internal/features/redeem/service"
	"streamraiser-backend/internal/features/redeem/timerview"
)

type RedeemHandler struct {
	service service.RedeemService

	// Emit cadence for the timer stream.
	refresh time.Duration
}

func NewRedeemHandler(service service.RedeemService, refresh time.Duration) *RedeemHandler {
	return &RedeemHandler{service: service, refresh: refresh}
}

func (h *RedeemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/redeems", h.globalFeed)

	redeems := router.Group("/fundraisers/:id/redeems")
	{
		redeems.GET("", h.list)
		redeems.GET("/stats", h.stats)
		redeems.GET("/:rid/timer", h.timer)
		redeems.GET("/:rid/timer/stream", h.timerStream)

		authed := redeems.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("", h.create)
			authed.PATCH("/:rid", h.act)
			authed.DELETE("/:rid", h.delete)
		}
	}
}

type actRequest struct {
	Action string  `json:"action" binding:"required"`
	Amount int     `json:"amount"`
	Note   *string `json:"note"`
}

// @Summary Create redeem
// @Description Add a redeem to a fundraiser's collection. Banked redeems for the same redeemer and reward merge into the existing entry.
// @Tags redeems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fundraiser ID"
// @Param payload body models.CreatePayload true "Redeem payload"
// @Success 201 {object} models.Redeem
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 403 {object} map[string]string "Not the fundraiser owner"
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id}/redeems [post]
func (h *RedeemHandler) create(c *gin.Context) {
	var payload models.CreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), c.Param("id"), middleware.UserFromContext(c), &payload)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// @Summary List redeems
// @Description List a fundraiser's redeems, newest first. Supports text search across reward name, redeemer and note, plus category and status filters.
// @Tags redeems
// @Produce json
// @Param id path string true "Fundraiser ID"
// @Param q query string false "Substring match on rewardName, redeemer, note"
// @Param category query string false "Exact category match"
// @Param status query string false "all, active or completed" default(all)
// @Success 200 {array} models.Redeem
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id}/redeems [get]
func (h *RedeemHandler) list(c *gin.Context) {
	redeems, err := h.service.List(
		c.Request.Context(),
		c.Param("id"),
		c.Query("q"),
		models.RewardCategory(c.Query("category")),
		query.StatusFilter(c.Query("status")),
	)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, redeems)
}

// @Summary Redeem stats
// @Description Aggregate counts by category and type, redeemer leaderboard and recent redeemers for one fundraiser.
// @Tags redeems
// @Produce json
// @Param id path string true "Fundraiser ID"
// @Success 200 {object} service.Stats
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id}/redeems/stats [get]
func (h *RedeemHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Apply redeem action
// @Description Run one lifecycle action (startTimer, pauseTimer, completeTimer, consumeBanked, addToBanked, completeInstant, incrementCounter, decrementCounter, activateToggle, deactivateToggle, resetRedeem, updateNote) against a redeem.
// @Tags redeems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fundraiser ID"
// @Param rid path string true "Redeem ID"
// @Param request body actRequest true "Action request"
// @Success 200 {object} models.Redeem
// @Failure 400 {object} map[string]string "Unknown action or type mismatch"
// @Failure 403 {object} map[string]string "Not the fundraiser owner"
// @Failure 404 {object} map[string]string "Fundraiser or redeem not found"
// @Router /fundraisers/{id}/redeems/{rid} [patch]
func (h *RedeemHandler) act(c *gin.Context) {
	var req actRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := engine.ActionParams{Amount: req.Amount}
	if req.Note != nil {
		params.Note = *req.Note
	}

	r, err := h.service.Act(c.Request.Context(), c.Param("id"), c.Param("rid"), middleware.UserFromContext(c), req.Action, params)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary Delete redeem
// @Description Remove a redeem from the collection. Deleting an absent redeem succeeds without change.
// @Tags redeems
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fundraiser ID"
// @Param rid path string true "Redeem ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Not the fundraiser owner"
// @Failure 404 {object} map[string]string "Fundraiser not found"
// @Router /fundraisers/{id}/redeems/{rid} [delete]
func (h *RedeemHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.Param("rid"), middleware.UserFromContext(c)); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Timer snapshot
// @Description Elapsed time projection for a timed redeem at the current instant.
// @Tags redeems
// @Produce json
// @Param id path string true "Fundraiser ID"
// @Param rid path string true "Redeem ID"
// @Success 200 {object} timerview.Projection
// @Failure 400 {object} map[string]string "Not a timed redeem"
// @Failure 404 {object} map[string]string "Redeem not found"
// @Router /fundraisers/{id}/redeems/{rid}/timer [get]
func (h *RedeemHandler) timer(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"), c.Param("rid"))
	if err != nil {
		httputil.Error(c, err)
		return
	}

	snap, err := timerview.Snapshot(r, time.Now())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Timer stream
// @Description Server-sent event stream of timer projections. Emits on every refresh tick while the timer runs and re-syncs once a second otherwise.
// @Tags redeems
// @Produce text/event-stream
// @Param id path string true "Fundraiser ID"
// @Param rid path string true "Redeem ID"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} map[string]string "Not a timed redeem"
// @Failure 404 {object} map[string]string "Redeem not found"
// @Router /fundraisers/{id}/redeems/{rid}/timer/stream [get]
func (h *RedeemHandler) timerStream(c *gin.Context) {
	fundraiserID := c.Param("id")
	redeemID := c.Param("rid")

	r, err := h.service.Get(c.Request.Context(), fundraiserID, redeemID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if _, err := timerview.Snapshot(r, time.Now()); err != nil {
		httputil.Error(c, err)
		return
	}

	events := make(chan timerview.Projection, 8)
	monitor := timerview.NewMonitor(
		func() *models.Redeem {
			r, err := h.service.Get(c.Request.Context(), fundraiserID, redeemID)
			if err != nil {
				return nil
			}
			return r
		},
		func(p timerview.Projection) {
			// Drop ticks the client is too slow to read.
			select {
			case events <- p:
			default:
			}
		},
		h.refresh,
	)
	defer monitor.Close()
	monitor.Sync()

	// Actions land over the regular PATCH endpoint, so the stream re-syncs
	// periodically to pick up externally started or paused timers.
	resync := time.NewTicker(time.Second)
	defer resync.Stop()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case p := <-events:
			c.SSEvent("timer", p)
			return true
		case <-resync.C:
			monitor.Sync()
			return true
		}
	})
}

// @Summary Global redeem feed
// @Description All redeems across every fundraiser in chronological order, for the event overlay.
// @Tags redeems
// @Produce json
// @Success 200 {array} service.FeedItem
// @Router /redeems [get]
func (h *RedeemHandler) globalFeed(c *gin.Context) {
	feed, err := h.service.GlobalFeed(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}
