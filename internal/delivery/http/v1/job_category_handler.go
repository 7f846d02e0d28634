package v1

import (
	"net/http"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobCategoryHandler struct {
	categoryUC domain.JobCategoryUsecase
}

func NewJobCategoryHandler(public, protected *gin.RouterGroup, categoryUC domain.JobCategoryUsecase, guard RoleGuard) {
	handler := &JobCategoryHandler{categoryUC: categoryUC}

	public.GET("/job-categories", handler.List)
	public.GET("/job-categories/:id", handler.GetByID)

	categories := protected.Group("/job-categories", guard(domain.RoleAdmin))
	{
		categories.POST("", handler.Create)
		categories.PATCH("/:id", handler.Update)
		categories.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create job category
// @Tags         job-categories
// @Accept       json
// @Produce      json
// @Param        category  body      domain.CreateJobCategoryInput  true  "Category"
// @Success      201       {object}  response.Response{data=domain.JobCategory}
// @Failure      409       {object}  response.Response
// @Router       /job-categories [post]
// @Security     BearerAuth
func (h *JobCategoryHandler) Create(c *gin.Context) {
	var input domain.CreateJobCategoryInput
	if !bindJSON(c, &input) {
		return
	}

	category, err := h.categoryUC.Create(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job category created successfully", category)
}

// List godoc
// @Summary      List job categories
// @Tags         job-categories
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobCategory}
// @Router       /job-categories [get]
func (h *JobCategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job categories retrieved successfully", categories)
}

// GetByID godoc
// @Summary      Get job category
// @Tags         job-categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response{data=domain.JobCategory}
// @Failure      404  {object}  response.Response
// @Router       /job-categories/{id} [get]
func (h *JobCategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job category retrieved successfully", category)
}

// Update godoc
// @Summary      Update job category
// @Tags         job-categories
// @Accept       json
// @Produce      json
// @Param        id        path      int                            true  "Category ID"
// @Param        category  body      domain.UpdateJobCategoryInput  true  "Fields to change"
// @Success      200       {object}  response.Response{data=domain.JobCategory}
// @Failure      409       {object}  response.Response
// @Router       /job-categories/{id} [patch]
// @Security     BearerAuth
func (h *JobCategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateJobCategoryInput
	if !bindJSON(c, &input) {
		return
	}

	category, err := h.categoryUC.Update(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job category updated successfully", category)
}

// Delete godoc
// @Summary      Delete job category
// @Description  Fails while jobs still reference the category
// @Tags         job-categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-categories/{id} [delete]
// @Security     BearerAuth
func (h *JobCategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job category deleted successfully", nil)
}
