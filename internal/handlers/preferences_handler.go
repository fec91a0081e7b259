package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// PreferencesHandler handles the caller's settings.
type PreferencesHandler struct {
	preferencesService services.PreferencesServicer
	activities         services.ActivityServicer
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(preferencesService services.PreferencesServicer, activities services.ActivityServicer) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService, activities: activities}
}

// GetPreferences returns the stored settings, or the defaults.
// @Summary     Get preferences
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserPreferences
// @Router      /settings/preferences [get]
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prefs, err := h.preferencesService.GetPreferences(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences merges the given settings into the stored ones.
// @Summary     Update preferences
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.PreferencesUpdate true "Settings to change"
// @Success     200 {object} models.UserPreferences
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /settings/preferences [put]
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.PreferencesUpdate
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	prefs, err := h.preferencesService.UpdatePreferences(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivitySettings,
		Action:       "Preferências atualizadas",
		ResourceType: "preferences",
		ResourceID:   prefs.ID,
	})
	c.JSON(http.StatusOK, prefs)
}
