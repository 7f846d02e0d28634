package v1

import (
	"net/http"
	"strings"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type WorkAssignmentHandler struct {
	assignmentUC domain.WorkAssignmentUsecase
}

func NewWorkAssignmentHandler(protected *gin.RouterGroup, assignmentUC domain.WorkAssignmentUsecase, guard RoleGuard) {
	handler := &WorkAssignmentHandler{assignmentUC: assignmentUC}

	assignments := protected.Group("/work-assignments")
	{
		assignments.POST("", guard(domain.RoleRecruiter, domain.RoleAdmin), handler.Create)
		assignments.GET("", handler.List)
		assignments.GET("/worker/:workerId", handler.ListByWorker)
		assignments.GET("/job/:jobId", handler.ListByJob)
		assignments.GET("/recruiter/:recruiterId", handler.ListByRecruiter)
		assignments.GET("/:id", handler.GetByID)
		assignments.PATCH("/:id", handler.Update)
		assignments.PATCH("/:id/status", handler.UpdateStatus)
		assignments.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Assign a worker
// @Description  Schedules a worker on a job for one day and emails the worker
// @Tags         work-assignments
// @Accept       json
// @Produce      json
// @Param        assignment  body      domain.CreateWorkAssignmentInput  true  "Assignment"
// @Success      201         {object}  response.Response{data=domain.WorkAssignment}
// @Failure      404         {object}  response.Response
// @Failure      409         {object}  response.Response
// @Router       /work-assignments [post]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) Create(c *gin.Context) {
	var input domain.CreateWorkAssignmentInput
	if !bindJSON(c, &input) {
		return
	}

	assignment, err := h.assignmentUC.Create(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Work assignment created successfully", assignment)
}

// List godoc
// @Summary      List work assignments
// @Description  Ordered by work date, latest first
// @Tags         work-assignments
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.WorkAssignment}
// @Router       /work-assignments [get]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) List(c *gin.Context) {
	h.list(c, domain.WorkAssignmentFilter{})
}

// ListByWorker godoc
// @Summary      Assignments of a worker
// @Tags         work-assignments
// @Produce      json
// @Param        workerId  path      int  true  "Worker ID"
// @Success      200       {object}  response.Response{data=[]domain.WorkAssignment}
// @Router       /work-assignments/worker/{workerId} [get]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) ListByWorker(c *gin.Context) {
	if id, ok := parseID(c, "workerId"); ok {
		h.list(c, domain.WorkAssignmentFilter{WorkerID: &id})
	}
}

// ListByJob godoc
// @Summary      Assignments for a job
// @Tags         work-assignments
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.WorkAssignment}
// @Router       /work-assignments/job/{jobId} [get]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) ListByJob(c *gin.Context) {
	if id, ok := parseID(c, "jobId"); ok {
		h.list(c, domain.WorkAssignmentFilter{JobID: &id})
	}
}

// ListByRecruiter godoc
// @Summary      Assignments made by a recruiter
// @Tags         work-assignments
// @Produce      json
// @Param        recruiterId  path      int  true  "Recruiter ID"
// @Success      200          {object}  response.Response{data=[]domain.WorkAssignment}
// @Router       /work-assignments/recruiter/{recruiterId} [get]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) ListByRecruiter(c *gin.Context) {
	if id, ok := parseID(c, "recruiterId"); ok {
		h.list(c, domain.WorkAssignmentFilter{RecruiterID: &id})
	}
}

func (h *WorkAssignmentHandler) list(c *gin.Context, filter domain.WorkAssignmentFilter) {
	assignments, err := h.assignmentUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work assignments retrieved successfully", assignments)
}

// GetByID godoc
// @Summary      Get work assignment
// @Tags         work-assignments
// @Produce      json
// @Param        id   path      int  true  "Assignment ID"
// @Success      200  {object}  response.Response{data=domain.WorkAssignment}
// @Failure      404  {object}  response.Response
// @Router       /work-assignments/{id} [get]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work assignment retrieved successfully", assignment)
}

// Update godoc
// @Summary      Update work assignment
// @Tags         work-assignments
// @Accept       json
// @Produce      json
// @Param        id          path      int                               true  "Assignment ID"
// @Param        assignment  body      domain.UpdateWorkAssignmentInput  true  "Fields to change"
// @Success      200         {object}  response.Response{data=domain.WorkAssignment}
// @Failure      404         {object}  response.Response
// @Failure      409         {object}  response.Response
// @Router       /work-assignments/{id} [patch]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateWorkAssignmentInput
	if !bindJSON(c, &input) {
		return
	}

	assignment, err := h.assignmentUC.Update(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work assignment updated successfully", assignment)
}

// UpdateStatus godoc
// @Summary      Change work assignment status
// @Tags         work-assignments
// @Produce      json
// @Param        id      path      int     true  "Assignment ID"
// @Param        status  query     string  true  "ACTIVE, COMPLETED or CANCELLED"
// @Success      200     {object}  response.Response{data=domain.WorkAssignment}
// @Failure      400     {object}  response.Response
// @Router       /work-assignments/{id}/status [patch]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status := domain.AssignmentStatus(strings.ToUpper(c.Query("status")))
	assignment, err := h.assignmentUC.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work assignment status updated successfully", assignment)
}

// Delete godoc
// @Summary      Delete work assignment
// @Tags         work-assignments
// @Produce      json
// @Param        id   path      int  true  "Assignment ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /work-assignments/{id} [delete]
// @Security     BearerAuth
func (h *WorkAssignmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work assignment deleted successfully", nil)
}
