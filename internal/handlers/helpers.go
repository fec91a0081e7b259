package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/logger"
	"confeitaria/internal/middleware"
	"confeitaria/internal/services"
	"confeitaria/internal/uuid"
	"confeitaria/internal/validator"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Campos obrigatórios: customer"`
	Code  string `json:"code" example:"VALIDATION_ERROR"`
}

// SuccessResponse is returned by deletes.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads the :id path parameter and checks it is a UUID.
func parsePathID(c *gin.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "ID inválido")
	}
	return id, nil
}

// bindJSON binds the request body and turns binding failures into a
// validation error naming the offending fields.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.WithMessage(apperrors.ErrValidation, validator.Describe(err))
	}
	return nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if appErr.Internal != nil {
		logger.Get().Errorw("request failed",
			"code", appErr.Code,
			"error", appErr.Internal.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
	}
	c.JSON(appErr.StatusCode, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
}

// recordActivity adds the request's client IP and owner to entry and logs it.
func recordActivity(c *gin.Context, activities services.ActivityServicer, userID string, entry services.ActivityEntry) {
	if activities == nil {
		return
	}
	entry.UserID = userID
	entry.IPAddress = c.ClientIP()
	activities.Log(entry)
}
