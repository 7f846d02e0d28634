package v1

import (
	"fmt"
	"net/http"

	"carebridge-backend/internal/delivery/http/middleware"
	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, protected *gin.RouterGroup, jobUC domain.JobUsecase, guard RoleGuard) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - job board browsing
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetByID)
	}

	// PROTECTED routes - ownership is checked by the usecase
	jobs := protected.Group("/jobs", guard(domain.RoleRecruiter, domain.RoleAdmin))
	{
		jobs.POST("", handler.Create)
		jobs.GET("/myjobs", handler.ListMine)
		jobs.PATCH("/:id", handler.Update)
		jobs.PATCH("/:id/toggle-active", handler.ToggleActive)
		jobs.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create a new job
// @Description  Recruiters post for themselves; admins may set recruiterId
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.CreateJobInput  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var input domain.CreateJobInput
	if !bindJSON(c, &input) {
		return
	}

	job, err := h.jobUC.Create(c.Request.Context(), middleware.CurrentActor(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// List godoc
// @Summary      List jobs
// @Description  Active jobs by default; activeOnly=false lists every job
// @Tags         jobs
// @Produce      json
// @Param        activeOnly  query     bool  false  "Only active jobs (default true)"
// @Success      200         {object}  response.Response{data=[]domain.Job}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	activeOnly, ok := queryBool(c, "activeOnly")
	if !ok {
		return
	}

	jobs, err := h.jobUC.List(c.Request.Context(), activeOnly == nil || *activeOnly)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

// ListMine godoc
// @Summary      My jobs
// @Description  Jobs posted by the caller. Omit activeOnly to list all.
// @Tags         jobs
// @Produce      json
// @Param        activeOnly  query     bool  false  "Filter by active flag"
// @Success      200         {object}  response.Response{data=[]domain.Job}
// @Router       /jobs/myjobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	activeOnly, ok := queryBool(c, "activeOnly")
	if !ok {
		return
	}

	jobs, err := h.jobUC.ListMine(c.Request.Context(), middleware.CurrentActor(c), activeOnly)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

// GetByID godoc
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved successfully", job)
}

// Update godoc
// @Summary      Update job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int                    true  "Job ID"
// @Param        job  body      domain.UpdateJobInput  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateJobInput
	if !bindJSON(c, &input) {
		return
	}

	job, err := h.jobUC.Update(c.Request.Context(), middleware.CurrentActor(c), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// ToggleActive godoc
// @Summary      Activate or deactivate job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Router       /jobs/{id}/toggle-active [patch]
// @Security     BearerAuth
func (h *JobHandler) ToggleActive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobUC.ToggleActive(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	state := "deactivated"
	if job.IsActive {
		state = "activated"
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Job %s successfully", state), job)
}

// Delete godoc
// @Summary      Delete job
// @Description  Jobs with applications or assignments cannot be deleted
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.jobUC.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
