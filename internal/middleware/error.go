package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/logger"
)

// ErrorHandler converts errors attached with c.Error into the
// {"error", "code"} response body. Internal causes are logged and never
// returned to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

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
				"request_id", c.GetString(RequestIDKey),
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
	}
}
