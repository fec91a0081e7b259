package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// LabelHandler serves the name/color lists: agenda statuses, agenda tags
// and order statuses. resource names the list in activity entries.
type LabelHandler[T any] struct {
	service    services.LabelServicer[T]
	activities services.ActivityServicer
	resource   string
	category   models.ActivityCategory
}

// NewLabelHandler creates a LabelHandler for one label table.
func NewLabelHandler[T any](service services.LabelServicer[T], activities services.ActivityServicer, resource string, category models.ActivityCategory) *LabelHandler[T] {
	return &LabelHandler[T]{service: service, activities: activities, resource: resource, category: category}
}

// CreateLabelRequest represents the request payload for a new label.
type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"required,hex_color"`
}

// UpdateLabelRequest holds the editable label fields.
type UpdateLabelRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,hex_color"`
}

// List returns the caller's labels in creation order.
// @Summary     List labels
// @Tags        labels
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.ColoredLabel
// @Router      /agenda/statuses [get]
// @Router      /agenda/tags [get]
// @Router      /orders/statuses [get]
func (h *LabelHandler[T]) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	labels, err := h.service.List(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

// Create adds a label.
// @Summary     Create a label
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLabelRequest true "Label"
// @Success     201 {object} models.ColoredLabel
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Name already used"
// @Router      /agenda/statuses [post]
// @Router      /agenda/tags [post]
// @Router      /orders/statuses [post]
func (h *LabelHandler[T]) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLabelRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	label, err := h.service.Create(userID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     h.category,
		Action:       "Criado: " + h.resource,
		Description:  req.Name,
		ResourceType: h.resource,
	})
	c.JSON(http.StatusCreated, label)
}

// Update edits a label.
// @Summary     Update a label
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Label ID"
// @Param       request body UpdateLabelRequest true "Fields to change"
// @Success     200 {object} models.ColoredLabel
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Name already used"
// @Router      /agenda/statuses/{id} [patch]
// @Router      /agenda/tags/{id} [patch]
// @Router      /orders/statuses/{id} [patch]
func (h *LabelHandler[T]) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLabelRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	label, err := h.service.Update(userID, id, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     h.category,
		Action:       "Atualizado: " + h.resource,
		ResourceType: h.resource,
		ResourceID:   id,
	})
	c.JSON(http.StatusOK, label)
}

// Delete removes a label.
// @Summary     Delete a label
// @Tags        labels
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Label ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /agenda/statuses/{id} [delete]
// @Router      /agenda/tags/{id} [delete]
// @Router      /orders/statuses/{id} [delete]
func (h *LabelHandler[T]) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.service.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     h.category,
		Action:       "Excluído: " + h.resource,
		ResourceType: h.resource,
		ResourceID:   id,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
