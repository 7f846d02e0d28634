package v1

import (
	"fmt"
	"net/http"
	"strings"

	"carebridge-backend/internal/delivery/http/middleware"
	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC   domain.UserUsecase
	exportUC domain.ExportUsecase
}

// NewUserHandler registers /users. Sign-up is public; optionalAuth lets an
// admin use the same route to create accounts with elevated fields.
func NewUserHandler(public, protected *gin.RouterGroup, userUC domain.UserUsecase, exportUC domain.ExportUsecase, guard RoleGuard, optionalAuth, uploadLimit gin.HandlerFunc) {
	handler := &UserHandler{userUC: userUC, exportUC: exportUC}

	public.POST("/users", optionalAuth, uploadLimit, handler.Create)

	users := protected.Group("/users")
	{
		adminOnly := guard(domain.RoleAdmin)
		users.GET("", adminOnly, handler.List)
		users.GET("/search", adminOnly, handler.Search)
		users.GET("/recruiters", adminOnly, handler.ListRecruiters)
		users.GET("/workers", adminOnly, handler.ListWorkers)
		users.GET("/export", adminOnly, handler.Export)

		users.GET("/:id", handler.GetByID)
		users.GET("/:id/jobs", handler.GetJobs)
		users.GET("/:id/applications", handler.GetApplications)
		users.GET("/:id/work-assignments", handler.GetWorkAssignments)

		users.PATCH("/:id", handler.Update)
		users.PATCH("/:id/avatar", uploadLimit, handler.UpdateAvatar)
		users.PATCH("/:id/role", adminOnly, handler.UpdateRole)
		users.PATCH("/:id/status", adminOnly, handler.ToggleStatus)
		users.DELETE("/:id", adminOnly, handler.Delete)
	}
}

type UpdateRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=ADMIN RECRUITER WORKER"`
}

// Create godoc
// @Summary      Create a new user
// @Description  Public sign-up, or admin account creation when called with an admin token. Accepts JSON or multipart/form-data with an optional avatar file.
// @Tags         users
// @Accept       json,mpfd
// @Produce      json
// @Param        user    body      domain.CreateUserInput  true   "User details"
// @Param        avatar  formData  file                    false  "Avatar image (JPEG, PNG or WebP)"
// @Success      201     {object}  response.Response{data=domain.User}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var input domain.CreateUserInput
	var avatar *domain.FileUpload

	if isMultipart(c) {
		if err := c.ShouldBind(&input); err != nil {
			c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
			return
		}
		file, err := formFile(c, "avatar")
		if err != nil {
			c.Error(err)
			return
		}
		avatar = file
	} else if !bindJSON(c, &input) {
		return
	}

	var actor *domain.Actor
	if current := middleware.CurrentActor(c); current.UserID != 0 {
		actor = &current
	}

	user, err := h.userUC.Create(c.Request.Context(), actor, input, avatar)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) filter(c *gin.Context) (domain.UserFilter, bool) {
	filter := domain.UserFilter{Query: strings.TrimSpace(c.Query("query"))}
	filter.Page, filter.PageSize = queryPage(c)

	if raw := c.Query("role"); raw != "" {
		role := domain.Role(strings.ToUpper(raw))
		if !role.Valid() {
			c.Error(apperror.BadRequest("Role must be one of: ADMIN, RECRUITER, WORKER"))
			return filter, false
		}
		filter.Role = &role
	}

	isActive, ok := queryBool(c, "isActive")
	if !ok {
		return filter, false
	}
	filter.IsActive = isActive
	return filter, true
}

// List godoc
// @Summary      List users
// @Description  Paged user list (Admin only)
// @Tags         users
// @Produce      json
// @Param        role      query     string  false  "ADMIN, RECRUITER or WORKER"
// @Param        isActive  query     bool    false  "Filter by active flag"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  response.Response{data=domain.UserList}
// @Failure      403       {object}  response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) List(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	filter.Query = ""

	list, err := h.userUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved successfully", list)
}

// Search godoc
// @Summary      Search users
// @Description  Substring search on first name, last name and email (Admin only)
// @Tags         users
// @Produce      json
// @Param        query     query     string  false  "Search text"
// @Param        role      query     string  false  "ADMIN, RECRUITER or WORKER"
// @Param        isActive  query     bool    false  "Filter by active flag"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  response.Response{data=domain.UserList}
// @Router       /users/search [get]
// @Security     BearerAuth
func (h *UserHandler) Search(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	list, err := h.userUC.Search(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved successfully", list)
}

// ListRecruiters godoc
// @Summary      Active recruiters
// @Description  Active users with the RECRUITER role and their profile (Admin only)
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Router       /users/recruiters [get]
// @Security     BearerAuth
func (h *UserHandler) ListRecruiters(c *gin.Context) {
	h.listByRole(c, domain.RoleRecruiter, "Recruiters retrieved successfully")
}

// ListWorkers godoc
// @Summary      Active workers
// @Description  Active users with the WORKER role and their profile (Admin only)
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Router       /users/workers [get]
// @Security     BearerAuth
func (h *UserHandler) ListWorkers(c *gin.Context) {
	h.listByRole(c, domain.RoleWorker, "Workers retrieved successfully")
}

func (h *UserHandler) listByRole(c *gin.Context, role domain.Role, message string) {
	users, err := h.userUC.ListByRole(c.Request.Context(), role)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, message, users)
}

// Export godoc
// @Summary      Export users
// @Description  Download users as an Excel workbook (Admin only)
// @Tags         users
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        role      query  string  false  "ADMIN, RECRUITER or WORKER"
// @Param        isActive  query  bool    false  "Filter by active flag"
// @Success      200
// @Router       /users/export [get]
// @Security     BearerAuth
func (h *UserHandler) Export(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	file, err := h.exportUC.ExportUsers(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	sendFile(c, file)
}

// GetByID godoc
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved successfully", user)
}

// GetJobs godoc
// @Summary      Jobs posted by a recruiter user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      400  {object}  response.Response
// @Router       /users/{id}/jobs [get]
// @Security     BearerAuth
func (h *UserHandler) GetJobs(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	jobs, err := h.userUC.GetJobs(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

// GetApplications godoc
// @Summary      Applications of a worker user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      400  {object}  response.Response
// @Router       /users/{id}/applications [get]
// @Security     BearerAuth
func (h *UserHandler) GetApplications(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	apps, err := h.userUC.GetApplications(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// GetWorkAssignments godoc
// @Summary      Work assignments of a user
// @Description  Assignments as worker or as recruiter depending on the user's role
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=[]domain.WorkAssignment}
// @Failure      400  {object}  response.Response
// @Router       /users/{id}/work-assignments [get]
// @Security     BearerAuth
func (h *UserHandler) GetWorkAssignments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignments, err := h.userUC.GetWorkAssignments(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work assignments retrieved successfully", assignments)
}

// Update godoc
// @Summary      Update user
// @Description  Partial update. Only admins or the user themself.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "User ID"
// @Param        user  body      domain.UpdateUserInput  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /users/{id} [patch]
// @Security     BearerAuth
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userUC.Update(c.Request.Context(), middleware.CurrentActor(c), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated successfully", user)
}

// UpdateAvatar godoc
// @Summary      Upload avatar
// @Description  Validates, compresses and stores the avatar image. Only admins or the user themself.
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        id      path      int   true  "User ID"
// @Param        avatar  formData  file  true  "Avatar image"
// @Success      200     {object}  response.Response{data=domain.User}
// @Failure      400     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /users/{id}/avatar [patch]
// @Security     BearerAuth
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, err := formFile(c, "avatar")
	if err != nil {
		c.Error(err)
		return
	}
	if file == nil {
		c.Error(apperror.BadRequest("Avatar file is required"))
		return
	}

	user, err := h.userUC.UpdateAvatar(c.Request.Context(), middleware.CurrentActor(c), id, *file)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Avatar updated successfully", user)
}

// UpdateRole godoc
// @Summary      Change user role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User ID"
// @Param        role  body      UpdateRoleRequest  true  "New role"
// @Success      200   {object}  response.Response{data=domain.User}
// @Router       /users/{id}/role [patch]
// @Security     BearerAuth
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUC.UpdateRole(c.Request.Context(), middleware.CurrentActor(c), id, req.Role)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("User role updated to %s", user.Role), user)
}

// ToggleStatus godoc
// @Summary      Activate or deactivate user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /users/{id}/status [patch]
// @Security     BearerAuth
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userUC.ToggleStatus(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("User %s successfully", state), user)
}

// Delete godoc
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userUC.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

func sendFile(c *gin.Context, file *domain.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
