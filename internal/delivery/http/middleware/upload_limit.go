package middleware

import (
	"context"
	"net/http"
	"strconv"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UploadAllower decides whether a caller may upload another file.
type UploadAllower interface {
	AllowUpload(ctx context.Context, ip string, userID uint) (bool, int, error)
}

// UploadLimit throttles avatar uploads per IP and per user. Only multipart
// requests count, so JSON sign-ups are not limited here.
func UploadLimit(limiter UploadAllower) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != "multipart/form-data" {
			c.Next()
			return
		}

		allowed, retryAfter, err := limiter.AllowUpload(c.Request.Context(), c.ClientIP(), CurrentActor(c).UserID)
		if err != nil {
			logger.Log.Warn("Upload limiter unavailable", "error", err, "request_id", c.GetString("RequestID"))
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Abort(c, http.StatusTooManyRequests, "Too many uploads. Please try again later.", "TooManyRequests")
			return
		}
		c.Next()
	}
}
