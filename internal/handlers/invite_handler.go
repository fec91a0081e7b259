package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// InviteHandler handles workspace invitations.
type InviteHandler struct {
	inviteService services.InviteServicer
	activities    services.ActivityServicer
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(inviteService services.InviteServicer, activities services.ActivityServicer) *InviteHandler {
	return &InviteHandler{inviteService: inviteService, activities: activities}
}

// InviteRequest represents the request payload for inviting a member.
type InviteRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"omitempty,user_role"`
	FullName string `json:"full_name" binding:"max=200"`
}

// InviteMember creates a member in the caller's workspace and returns the
// temporary password once.
// @Summary     Invite a member
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InviteRequest true "Invitee"
// @Success     201 {object} services.InviteResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Caller may not invite"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Profile creation failed"
// @Router      /users/invites [post]
func (h *InviteHandler) InviteMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InviteRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.inviteService.InviteMember(userID, services.InviteInput{
		Email:    req.Email,
		Role:     models.Role(req.Role),
		FullName: req.FullName,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityUser,
		Action:       "Usuário convidado",
		Description:  result.Email,
		ResourceType: "user",
		ResourceID:   result.ID,
		Changes:      map[string]any{"role": result.Role},
	})
	c.JSON(http.StatusCreated, result)
}
