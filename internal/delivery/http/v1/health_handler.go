package v1

import (
	"net/http"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Description  Database and Redis reachability. Returns 503 when the database is down.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.HealthStatus}
// @Failure      503  {object}  response.Response{data=domain.HealthStatus}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	if status.Database != "up" {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:    false,
			Message:    "Service degraded",
			Data:       status,
			Error:      "ServiceUnavailable",
			StatusCode: http.StatusServiceUnavailable,
			RequestID:  c.GetString("RequestID"),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
