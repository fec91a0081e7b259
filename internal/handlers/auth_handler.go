package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/middleware"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// AuthHandler handles signup, login and token refresh.
type AuthHandler struct {
	userService services.UserServicer
	activities  services.ActivityServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, activities services.ActivityServicer) *AuthHandler {
	return &AuthHandler{userService: userService, activities: activities}
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Name     string `json:"name" binding:"max=200"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token issued at login.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse holds a fresh token pair.
type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	User         *models.User    `json:"user"`
	Profile      *models.Profile `json:"profile,omitempty"`
}

// issueTokens signs a token pair and stores the refresh token's hash so
// only the latest refresh token stays valid.
func (h *AuthHandler) issueTokens(user *models.User) (string, string, error) {
	access, err := middleware.GenerateAccessToken(user)
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	refresh, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := h.userService.StoreRefreshTokenHash(user.ID, middleware.HashToken(refresh)); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Signup handles user registration
// @Summary     Sign up
// @Description Create a user and an admin profile in a new workspace
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignupRequest true "Signup data"
// @Success     201 {object} AuthResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, profile, err := h.userService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	access, refresh, err := h.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, user.ID, services.ActivityEntry{
		Category:     models.ActivityUser,
		Action:       "Conta criada",
		Description:  user.Email,
		ResourceType: "user",
		ResourceID:   user.ID,
	})

	c.JSON(http.StatusCreated, AuthResponse{AccessToken: access, RefreshToken: refresh, User: user, Profile: profile})
}

// Login handles user login
// @Summary     Log in
// @Description Authenticate with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} AuthResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     423 {object} ErrorResponse "Account locked"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	access, refresh, err := h.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{AccessToken: access, RefreshToken: refresh, User: user})
}

// Refresh exchanges a refresh token for a new token pair.
// @Summary     Refresh tokens
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} AuthResponse
// @Failure     401 {object} ErrorResponse "Invalid refresh token"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	stored, err := h.userService.GetRefreshTokenHash(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}
	presented := middleware.HashToken(req.RefreshToken)
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil || !user.IsActive {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	access, refresh, err := h.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{AccessToken: access, RefreshToken: refresh, User: user})
}
