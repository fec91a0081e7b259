package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/pagination"
	"confeitaria/internal/services"
	"confeitaria/internal/validator"
)

// ActivityHandler serves the activities feed.
type ActivityHandler struct {
	activityService services.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ActivityQuery holds the feed's query parameters.
type ActivityQuery struct {
	pagination.PageRequest
	Category string `form:"category" binding:"omitempty,activity_category"`
	Search   string `form:"search" binding:"max=200"`
}

// ListActivities returns the caller's activities, newest first.
// @Summary     List activities
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "pedido, produto, cliente, configuracao, financeiro or usuario"
// @Param       search    query string false "Text in action or description"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Activity]
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Router      /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, validator.Describe(err)))
		return
	}

	filter := services.ActivityFilter{Search: q.Search}
	if q.Category != "" {
		category := models.ActivityCategory(q.Category)
		filter.Category = &category
	}

	result, err := h.activityService.ListActivities(userID, filter, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
