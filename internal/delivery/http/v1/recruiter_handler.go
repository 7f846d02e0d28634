package v1

import (
	"context"
	"net/http"
	"strings"

	"carebridge-backend/internal/delivery/http/middleware"
	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	recruiterUC domain.RecruiterUsecase
}

// NewRecruiterHandler registers /recruiters. Registration and the directory
// reads are public.
func NewRecruiterHandler(public, protected *gin.RouterGroup, recruiterUC domain.RecruiterUsecase, guard RoleGuard) {
	handler := &RecruiterHandler{recruiterUC: recruiterUC}

	publicRecruiters := public.Group("/recruiters")
	{
		publicRecruiters.POST("", handler.Register)
		publicRecruiters.GET("", handler.List)
		publicRecruiters.GET("/user/:userId", handler.GetByUserID)
		publicRecruiters.GET("/:id", handler.GetByID)
	}

	recruiters := protected.Group("/recruiters")
	{
		adminOnly := guard(domain.RoleAdmin)
		recruiters.GET("/stats", adminOnly, handler.Stats)
		recruiters.PATCH("/:id", handler.Update)
		recruiters.PATCH("/:id/verify", adminOnly, handler.Verify)
		recruiters.PATCH("/:id/unverify", adminOnly, handler.Unverify)
		recruiters.PATCH("/:id/toggle-verification", adminOnly, handler.ToggleVerification)
		recruiters.DELETE("/:id", adminOnly, handler.Delete)
	}
}

// Register godoc
// @Summary      Register a recruiter
// @Description  Creates the RECRUITER user account and the recruiter profile in one transaction
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        recruiter  body      domain.RegisterRecruiterInput  true  "Account and profile"
// @Success      201        {object}  response.Response{data=domain.Recruiter}
// @Failure      400        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /recruiters [post]
func (h *RecruiterHandler) Register(c *gin.Context) {
	var input domain.RegisterRecruiterInput
	if !bindJSON(c, &input) {
		return
	}

	recruiter, err := h.recruiterUC.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Recruiter registered successfully", recruiter)
}

// List godoc
// @Summary      List recruiters
// @Tags         recruiters
// @Produce      json
// @Param        type      query     string  false  "COMPANY, GROUP or INDIVIDUAL"
// @Param        location  query     string  false  "Location contains (case-insensitive)"
// @Param        verified  query     bool    false  "Verified flag"
// @Param        search    query     string  false  "Company name, description or user name"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  response.Response{data=domain.RecruiterList}
// @Router       /recruiters [get]
func (h *RecruiterHandler) List(c *gin.Context) {
	filter := domain.RecruiterFilter{
		Location: strings.TrimSpace(c.Query("location")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	filter.Page, filter.PageSize = queryPage(c)

	if raw := c.Query("type"); raw != "" {
		t := domain.RecruiterType(strings.ToUpper(raw))
		if !t.Valid() {
			c.Error(apperror.BadRequest("Type must be one of: COMPANY, GROUP, INDIVIDUAL"))
			return
		}
		filter.Type = &t
	}

	verified, ok := queryBool(c, "verified")
	if !ok {
		return
	}
	filter.Verified = verified

	list, err := h.recruiterUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiters retrieved successfully", list)
}

// Stats godoc
// @Summary      Recruiter statistics
// @Tags         recruiters
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.RecruiterStats}
// @Router       /recruiters/stats [get]
// @Security     BearerAuth
func (h *RecruiterHandler) Stats(c *gin.Context) {
	stats, err := h.recruiterUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter statistics retrieved successfully", stats)
}

// GetByUserID godoc
// @Summary      Recruiter profile of a user
// @Tags         recruiters
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  response.Response{data=domain.Recruiter}
// @Failure      404     {object}  response.Response
// @Router       /recruiters/user/{userId} [get]
func (h *RecruiterHandler) GetByUserID(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	recruiter, err := h.recruiterUC.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter retrieved successfully", recruiter)
}

// GetByID godoc
// @Summary      Get recruiter
// @Tags         recruiters
// @Produce      json
// @Param        id   path      int  true  "Recruiter ID"
// @Success      200  {object}  response.Response{data=domain.Recruiter}
// @Failure      404  {object}  response.Response
// @Router       /recruiters/{id} [get]
func (h *RecruiterHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	recruiter, err := h.recruiterUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter retrieved successfully", recruiter)
}

// Update godoc
// @Summary      Update recruiter
// @Description  Partial update by an admin or the profile owner
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        id         path      int                          true  "Recruiter ID"
// @Param        recruiter  body      domain.UpdateRecruiterInput  true  "Fields to change"
// @Success      200        {object}  response.Response{data=domain.Recruiter}
// @Failure      400        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /recruiters/{id} [patch]
// @Security     BearerAuth
func (h *RecruiterHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input domain.UpdateRecruiterInput
	if !bindJSON(c, &input) {
		return
	}

	recruiter, err := h.recruiterUC.Update(c.Request.Context(), middleware.CurrentActor(c), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter updated successfully", recruiter)
}

// Verify godoc
// @Summary      Verify recruiter
// @Tags         recruiters
// @Produce      json
// @Param        id   path      int  true  "Recruiter ID"
// @Success      200  {object}  response.Response{data=domain.Recruiter}
// @Router       /recruiters/{id}/verify [patch]
// @Security     BearerAuth
func (h *RecruiterHandler) Verify(c *gin.Context) {
	h.verification(c, h.recruiterUC.Verify)
}

// Unverify godoc
// @Summary      Unverify recruiter
// @Tags         recruiters
// @Produce      json
// @Param        id   path      int  true  "Recruiter ID"
// @Success      200  {object}  response.Response{data=domain.Recruiter}
// @Router       /recruiters/{id}/unverify [patch]
// @Security     BearerAuth
func (h *RecruiterHandler) Unverify(c *gin.Context) {
	h.verification(c, h.recruiterUC.Unverify)
}

// ToggleVerification godoc
// @Summary      Toggle recruiter verification
// @Tags         recruiters
// @Produce      json
// @Param        id   path      int  true  "Recruiter ID"
// @Success      200  {object}  response.Response{data=domain.Recruiter}
// @Router       /recruiters/{id}/toggle-verification [patch]
// @Security     BearerAuth
func (h *RecruiterHandler) ToggleVerification(c *gin.Context) {
	h.verification(c, h.recruiterUC.ToggleVerification)
}

func (h *RecruiterHandler) verification(c *gin.Context, apply func(context.Context, uint) (*domain.Recruiter, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	recruiter, err := apply(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Recruiter unverified successfully"
	if recruiter.Verified {
		message = "Recruiter verified successfully"
	}
	response.Success(c, http.StatusOK, message, recruiter)
}

// Delete godoc
// @Summary      Delete recruiter
// @Tags         recruiters
// @Produce      json
// @Param        id   path      int  true  "Recruiter ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recruiters/{id} [delete]
// @Security     BearerAuth
func (h *RecruiterHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.recruiterUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter deleted successfully", nil)
}
