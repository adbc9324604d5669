package handler

import (
	"net/http"

	"github.com/event-finder/backend/internal/model"
	"github.com/event-finder/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type FavoritesHandler struct {
	svc *service.FavoritesService
}

func NewFavoritesHandler(svc *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{svc: svc}
}

// Add godoc
// @Summary Favorite an event
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.FavoriteCreateRequest true "Event to favorite"
// @Success 200 {object} model.FavoriteEvent
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /favorites [post]
func (h *FavoritesHandler) Add(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.FavoriteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
		return
	}

	fav, err := h.svc.Add(c.Request.Context(), user.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, fav)
}

// List godoc
// @Summary List the current user's favorites, ascending by event date
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.FavoriteEvent
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /favorites [get]
func (h *FavoritesHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	favorites, err := h.svc.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}
