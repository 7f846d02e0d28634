package v1

import (
	"net/http"
	"strings"

	"carebridge-backend/internal/delivery/http/middleware"
	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ConnectionRequestHandler struct {
	connectionUC domain.ConnectionRequestUsecase
}

func NewConnectionRequestHandler(protected *gin.RouterGroup, connectionUC domain.ConnectionRequestUsecase, guard RoleGuard) {
	handler := &ConnectionRequestHandler{connectionUC: connectionUC}

	requests := protected.Group("/connection-requests")
	{
		requests.POST("", guard(domain.RoleAdmin, domain.RoleRecruiter), handler.Create)
		requests.GET("", guard(domain.RoleAdmin, domain.RoleRecruiter), handler.List)
		requests.GET("/:id", guard(domain.RoleAdmin, domain.RoleRecruiter), handler.GetByID)
		requests.PUT("/:id/status", guard(domain.RoleAdmin), handler.UpdateStatus)
	}
}

// Create godoc
// @Summary      Request a connection with a worker
// @Description  Every admin is notified by email
// @Tags         connection-requests
// @Accept       json
// @Produce      json
// @Param        request  body      domain.CreateConnectionRequestInput  true  "Recruiter and worker"
// @Success      201      {object}  response.Response{data=domain.ConnectionRequest}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /connection-requests [post]
// @Security     BearerAuth
func (h *ConnectionRequestHandler) Create(c *gin.Context) {
	var input domain.CreateConnectionRequestInput
	if !bindJSON(c, &input) {
		return
	}

	request, err := h.connectionUC.Create(c.Request.Context(), middleware.CurrentActor(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Connection request created successfully", request)
}

// List godoc
// @Summary      List connection requests
// @Tags         connection-requests
// @Produce      json
// @Param        recruiterId  query     int     false  "Recruiter ID"
// @Param        workerId     query     int     false  "Worker ID"
// @Param        status       query     string  false  "PENDING, APPROVED, REJECTED or CANCELLED"
// @Success      200          {object}  response.Response{data=[]domain.ConnectionRequest}
// @Router       /connection-requests [get]
// @Security     BearerAuth
func (h *ConnectionRequestHandler) List(c *gin.Context) {
	var filter domain.ConnectionRequestFilter
	var ok bool

	if filter.RecruiterID, ok = queryUint(c, "recruiterId"); !ok {
		return
	}
	if filter.WorkerID, ok = queryUint(c, "workerId"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ConnectionStatus(strings.ToUpper(raw))
		if !status.Valid() {
			c.Error(apperror.BadRequest("Invalid connection request status"))
			return
		}
		filter.Status = &status
	}

	requests, err := h.connectionUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection requests retrieved successfully", requests)
}

// GetByID godoc
// @Summary      Get connection request
// @Tags         connection-requests
// @Produce      json
// @Param        id   path      int  true  "Connection request ID"
// @Success      200  {object}  response.Response{data=domain.ConnectionRequest}
// @Failure      404  {object}  response.Response
// @Router       /connection-requests/{id} [get]
// @Security     BearerAuth
func (h *ConnectionRequestHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	request, err := h.connectionUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection request retrieved successfully", request)
}

// UpdateStatus godoc
// @Summary      Review connection request
// @Description  APPROVED emails both parties, REJECTED emails the recruiter (Admin only)
// @Tags         connection-requests
// @Accept       json
// @Produce      json
// @Param        id      path      int                                 true  "Connection request ID"
// @Param        status  body      domain.UpdateConnectionStatusInput  true  "Decision"
// @Success      200     {object}  response.Response{data=domain.ConnectionRequest}
// @Failure      404     {object}  response.Response
// @Router       /connection-requests/{id}/status [put]
// @Security     BearerAuth
func (h *ConnectionRequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateConnectionStatusInput
	if !bindJSON(c, &input) {
		return
	}

	request, err := h.connectionUC.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection request status updated successfully", request)
}
