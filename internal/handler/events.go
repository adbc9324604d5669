package handler

import (
	"net/http"

	"github.com/event-finder/backend/internal/model"
	"github.com/event-finder/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type EventsHandler struct {
	svc *service.EventsService
}

func NewEventsHandler(svc *service.EventsService) *EventsHandler {
	return &EventsHandler{svc: svc}
}

// Search godoc
// @Summary Search events via the Ticketmaster Discovery API
// @Tags events
// @Produce json
// @Param keyword query string false "Keyword"
// @Param city query string false "City"
// @Param countryCode query string false "ISO country code"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param size query int false "Page size"
// @Success 200 {object} model.EventSearchResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /events [get]
func (h *EventsHandler) Search(c *gin.Context) {
	var q model.EventSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	events, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "event provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, model.EventSearchResponse{Events: events})
}
