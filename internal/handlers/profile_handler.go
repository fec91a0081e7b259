package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// ProfileHandler handles the caller's profile and avatar.
type ProfileHandler struct {
	profileService services.ProfileServicer
	activities     services.ActivityServicer
	maxAvatarBytes int64
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, activities services.ActivityServicer, maxAvatarBytes int64) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, activities: activities, maxAvatarBytes: maxAvatarBytes}
}

// UpdateProfileRequest holds the editable profile fields. Omitted fields
// are left unchanged.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Address  *string `json:"address" binding:"omitempty,max=300"`
	City     *string `json:"city" binding:"omitempty,max=100"`
	State    *string `json:"state" binding:"omitempty,max=50"`
	ZipCode  *string `json:"zip_code" binding:"omitempty,max=20"`
}

// GetProfile returns the caller's profile.
// @Summary     Get profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Profile
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile edits the caller's profile.
// @Summary     Update profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} models.Profile
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, services.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivitySettings,
		Action:       "Perfil atualizado",
		ResourceType: "profile",
		ResourceID:   userID,
	})
	c.JSON(http.StatusOK, profile)
}

// UploadAvatar stores a new profile picture from the multipart field "avatar".
// @Summary     Upload avatar
// @Tags        profile
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       avatar formData file true "Image file"
// @Success     200 {object} models.Profile
// @Failure     400 {object} ErrorResponse "Missing, invalid or oversized image"
// @Router      /profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: avatar"))
		return
	}
	if header.Size > h.maxAvatarBytes {
		respondWithError(c, apperrors.ErrAvatarTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxAvatarBytes+1))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	profile, err := h.profileService.UploadAvatar(c.Request.Context(), userID, data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivitySettings,
		Action:       "Foto de perfil atualizada",
		ResourceType: "profile",
		ResourceID:   userID,
	})
	c.JSON(http.StatusOK, profile)
}
