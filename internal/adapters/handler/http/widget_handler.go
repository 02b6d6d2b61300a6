package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
	"github.com/loranstudio/quotewidget-engine/internal/core/services"
)

// ReloadSubscriber hands out a stream of reload signals and its cancel
// function.
type ReloadSubscriber interface {
	Subscribe() (<-chan domain.ReloadSignal, func())
}

type WidgetHandler struct {
	svc     *services.WidgetService
	reloads ReloadSubscriber
}

func NewWidgetHandler(svc *services.WidgetService, reloads ReloadSubscriber) *WidgetHandler {
	return &WidgetHandler{
		svc:     svc,
		reloads: reloads,
	}
}

type pinRequest struct {
	QuoteID string `json:"quote_id" binding:"required"`
}

func (h *WidgetHandler) RegisterRoutes(router *gin.RouterGroup) {
	widget := router.Group("/widget")
	{
		widget.GET("/placeholder", h.Placeholder)
		widget.GET("/snapshot", h.Snapshot)
		widget.GET("/timeline", h.Timeline)
		widget.GET("/state", h.State)
		widget.POST("/pin", h.Pin)
		widget.POST("/refresh", h.Refresh)
		if h.reloads != nil {
			widget.GET("/events", h.Events)
		}
	}
}

// Placeholder godoc
// @Summary Loading render
// @Tags widget
// @Produce json
// @Success 200 {object} domain.WidgetEntry
// @Router /widget/placeholder [get]
func (h *WidgetHandler) Placeholder(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Placeholder())
}

// Snapshot godoc
// @Summary Preview render
// @Tags widget
// @Produce json
// @Success 200 {object} domain.WidgetEntry
// @Router /widget/snapshot [get]
func (h *WidgetHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot(c.Request.Context()))
}

// Timeline godoc
// @Summary Timeline render
// @Description One entry, valid until the next local midnight.
// @Tags widget
// @Produce json
// @Success 200 {object} domain.WidgetTimeline
// @Router /widget/timeline [get]
func (h *WidgetHandler) Timeline(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Timeline(c.Request.Context()))
}

// State godoc
// @Summary Shared widget keys
// @Tags widget
// @Produce json
// @Success 200 {object} services.WidgetState
// @Failure 500 {object} errorResponse
// @Router /widget/state [get]
func (h *WidgetHandler) State(c *gin.Context) {
	state, err := h.svc.State(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Pin godoc
// @Summary Pin a quote to the widget
// @Tags widget
// @Accept json
// @Param pin body pinRequest true "Quote to pin"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /widget/pin [post]
func (h *WidgetHandler) Pin(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Pin(c.Request.Context(), req.QuoteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Refresh godoc
// @Summary Drop the pin and reload widgets
// @Tags widget
// @Success 204
// @Failure 500 {object} errorResponse
// @Router /widget/refresh [post]
func (h *WidgetHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Events godoc
// @Summary Reload signals as server-sent events
// @Tags widget
// @Produce text/event-stream
// @Success 200
// @Router /widget/events [get]
func (h *WidgetHandler) Events(c *gin.Context) {
	signals, cancel := h.reloads.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case signal, ok := <-signals:
			if !ok {
				return
			}
			c.SSEvent("reload", signal)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}
