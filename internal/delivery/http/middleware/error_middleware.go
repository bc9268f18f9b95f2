package middleware

import (
	"errors"
	"net/http"

	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/pkg/apperror"
	"talenthub-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors appended to the gin context into JSON error
// responses. Application errors keep their status and message; anything
// else is logged and reported as a generic 500 so internals never leak.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("Unhandled error",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
