package middleware

import (
	"errors"
	"net/http"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			response.Error(c, appErr.Code, appErr.Message, appErr.Type())
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal server error",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "InternalServerError")
	}
}

// Recovery turns panics into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		response.Abort(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "InternalServerError")
	})
}
