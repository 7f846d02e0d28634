package v1

import (
	"net/http"
	"strings"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC    domain.ApplicationUsecase
	exportUC domain.ExportUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase, exportUC domain.ExportUsecase, guard RoleGuard) {
	handler := &ApplicationHandler{appUC: appUC, exportUC: exportUC}

	applications := protected.Group("/applications")
	{
		applications.POST("", handler.Create)
		applications.GET("", guard(domain.RoleAdmin), handler.List)
		applications.GET("/export", guard(domain.RoleAdmin), handler.Export)
		applications.GET("/job/:jobId", handler.ListByJob)
		applications.GET("/worker/:workerId", handler.ListByWorker)
		applications.GET("/:id", handler.GetByID)
		applications.PATCH("/:id", handler.Update)
		applications.PATCH("/:id/status", handler.UpdateStatus)
		applications.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Apply to a job
// @Description  Creates a PENDING application and notifies the job's recruiter
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      domain.CreateApplicationInput  true  "Application"
// @Success      201          {object}  response.Response{data=domain.Application}
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	var input domain.CreateApplicationInput
	if !bindJSON(c, &input) {
		return
	}

	app, err := h.appUC.Create(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application created successfully", app)
}

// List godoc
// @Summary      List applications
// @Description  Newest first (Admin only)
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.appUC.List(c.Request.Context(), domain.ApplicationFilter{})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// Export godoc
// @Summary      Export applications
// @Description  Download applications as an Excel workbook (Admin only)
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "PENDING, REVIEWED, ACCEPTED, REJECTED or WITHDRAWN"
// @Success      200
// @Router       /applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	var filter domain.ApplicationFilter
	if raw := c.Query("status"); raw != "" {
		status := domain.ApplicationStatus(strings.ToUpper(raw))
		if !status.Valid() {
			c.Error(apperror.BadRequest("Invalid application status"))
			return
		}
		filter.Status = &status
	}

	file, err := h.exportUC.ExportApplications(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	sendFile(c, file)
}

// GetByID godoc
// @Summary      Get application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	app, err := h.appUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved successfully", app)
}

// ListByJob godoc
// @Summary      Applications for a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Router       /applications/job/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, ok := parseID(c, "jobId")
	if !ok {
		return
	}

	apps, err := h.appUC.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// ListByWorker godoc
// @Summary      Applications by a worker
// @Tags         applications
// @Produce      json
// @Param        workerId  path      int  true  "Worker ID"
// @Success      200       {object}  response.Response{data=[]domain.Application}
// @Router       /applications/worker/{workerId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByWorker(c *gin.Context) {
	workerID, ok := parseID(c, "workerId")
	if !ok {
		return
	}

	apps, err := h.appUC.ListByWorker(c.Request.Context(), workerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// Update godoc
// @Summary      Update application
// @Description  Partial update. Moving to ACCEPTED emails the worker.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      int                            true  "Application ID"
// @Param        application  body      domain.UpdateApplicationInput  true  "Fields to change"
// @Success      200          {object}  response.Response{data=domain.Application}
// @Failure      404          {object}  response.Response
// @Router       /applications/{id} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateApplicationInput
	if !bindJSON(c, &input) {
		return
	}

	app, err := h.appUC.Update(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated successfully", app)
}

// UpdateStatus godoc
// @Summary      Change application status
// @Tags         applications
// @Produce      json
// @Param        id      path      int     true  "Application ID"
// @Param        status  query     string  true  "PENDING, REVIEWED, ACCEPTED, REJECTED or WITHDRAWN"
// @Success      200     {object}  response.Response{data=domain.Application}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status := domain.ApplicationStatus(strings.ToUpper(c.Query("status")))
	app, err := h.appUC.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated successfully", app)
}

// Delete godoc
// @Summary      Delete application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.appUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application deleted successfully", nil)
}
