package v1

import (
	"fmt"
	"net/http"

	"carebridge-backend/internal/delivery/http/middleware"
	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	workerUC domain.WorkerUsecase
}

func NewWorkerHandler(protected *gin.RouterGroup, workerUC domain.WorkerUsecase, guard RoleGuard) {
	handler := &WorkerHandler{workerUC: workerUC}

	workers := protected.Group("/workers")
	{
		workers.POST("", guard(domain.RoleWorker, domain.RoleAdmin), handler.Create)
		workers.GET("", guard(domain.RoleAdmin, domain.RoleRecruiter), handler.List)

		// Worker self-service
		workers.GET("/me", guard(domain.RoleWorker), handler.GetMine)
		workers.PATCH("/me", guard(domain.RoleWorker), handler.UpdateMine)
		workers.PATCH("/me/toggle-availability", guard(domain.RoleWorker), handler.ToggleMyAvailability)

		workers.GET("/:id", guard(domain.RoleAdmin, domain.RoleRecruiter), handler.GetByID)
		workers.PATCH("/:id", guard(domain.RoleAdmin, domain.RoleWorker), handler.Update)
		workers.PATCH("/:id/toggle-availability", guard(domain.RoleAdmin), handler.ToggleAvailability)
		workers.DELETE("/:id", guard(domain.RoleAdmin), handler.Delete)
	}
}

// Create godoc
// @Summary      Create worker profile
// @Description  Creates the caller's worker profile. Admins may pass userId.
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        worker  body      domain.CreateWorkerInput  true  "Worker profile"
// @Success      201     {object}  response.Response{data=domain.Worker}
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /workers [post]
// @Security     BearerAuth
func (h *WorkerHandler) Create(c *gin.Context) {
	var input domain.CreateWorkerInput
	if !bindJSON(c, &input) {
		return
	}

	worker, err := h.workerUC.Create(c.Request.Context(), middleware.CurrentActor(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Worker profile created successfully", worker)
}

// List godoc
// @Summary      List workers
// @Tags         workers
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Worker}
// @Router       /workers [get]
// @Security     BearerAuth
func (h *WorkerHandler) List(c *gin.Context) {
	workers, err := h.workerUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Workers retrieved successfully", workers)
}

// GetMine godoc
// @Summary      My worker profile
// @Tags         workers
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Worker}
// @Failure      404  {object}  response.Response
// @Router       /workers/me [get]
// @Security     BearerAuth
func (h *WorkerHandler) GetMine(c *gin.Context) {
	worker, err := h.workerUC.GetByUserID(c.Request.Context(), middleware.CurrentActor(c).UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker profile retrieved successfully", worker)
}

// GetByID godoc
// @Summary      Get worker
// @Tags         workers
// @Produce      json
// @Param        id   path      int  true  "Worker ID"
// @Success      200  {object}  response.Response{data=domain.Worker}
// @Failure      404  {object}  response.Response
// @Router       /workers/{id} [get]
// @Security     BearerAuth
func (h *WorkerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	worker, err := h.workerUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker retrieved successfully", worker)
}

// UpdateMine godoc
// @Summary      Update my worker profile
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        worker  body      domain.UpdateWorkerInput  true  "Fields to change"
// @Success      200     {object}  response.Response{data=domain.Worker}
// @Router       /workers/me [patch]
// @Security     BearerAuth
func (h *WorkerHandler) UpdateMine(c *gin.Context) {
	var input domain.UpdateWorkerInput
	if !bindJSON(c, &input) {
		return
	}

	worker, err := h.workerUC.UpdateMine(c.Request.Context(), middleware.CurrentActor(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker profile updated successfully", worker)
}

// Update godoc
// @Summary      Update worker
// @Description  Admins may update any profile, workers only their own.
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        id      path      int                       true  "Worker ID"
// @Param        worker  body      domain.UpdateWorkerInput  true  "Fields to change"
// @Success      200     {object}  response.Response{data=domain.Worker}
// @Failure      403     {object}  response.Response
// @Router       /workers/{id} [patch]
// @Security     BearerAuth
func (h *WorkerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateWorkerInput
	if !bindJSON(c, &input) {
		return
	}

	worker, err := h.workerUC.Update(c.Request.Context(), middleware.CurrentActor(c), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker updated successfully", worker)
}

// ToggleMyAvailability godoc
// @Summary      Toggle my availability
// @Tags         workers
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Worker}
// @Router       /workers/me/toggle-availability [patch]
// @Security     BearerAuth
func (h *WorkerHandler) ToggleMyAvailability(c *gin.Context) {
	worker, err := h.workerUC.ToggleMyAvailability(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		c.Error(err)
		return
	}
	availabilityResponse(c, worker)
}

// ToggleAvailability godoc
// @Summary      Toggle worker availability
// @Tags         workers
// @Produce      json
// @Param        id   path      int  true  "Worker ID"
// @Success      200  {object}  response.Response{data=domain.Worker}
// @Router       /workers/{id}/toggle-availability [patch]
// @Security     BearerAuth
func (h *WorkerHandler) ToggleAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	worker, err := h.workerUC.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	availabilityResponse(c, worker)
}

func availabilityResponse(c *gin.Context, worker *domain.Worker) {
	state := "unavailable"
	if worker.Available {
		state = "available"
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Worker availability updated to %s", state), worker)
}

// Delete godoc
// @Summary      Delete worker
// @Tags         workers
// @Produce      json
// @Param        id   path      int  true  "Worker ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /workers/{id} [delete]
// @Security     BearerAuth
func (h *WorkerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.workerUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker deleted successfully", nil)
}
