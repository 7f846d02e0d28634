package v1

import (
	"net/http"

	"carebridge-backend/internal/delivery/http/middleware"
	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	cookieMaxAge int
	secureCookie bool
}

// NewAuthHandler registers the login and profile routes. loginLimit throttles
// credential attempts per client.
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimit gin.HandlerFunc, cookieMaxAge int, secureCookie bool) {
	handler := &AuthHandler{
		authUC:       authUC,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("", loginLimit, handler.Login)
		publicAuth.POST("/login", loginLimit, handler.Login)
		publicAuth.POST("/logout", handler.Logout)
	}

	// Protected Routes
	protected.GET("/auth/profile", handler.Profile)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password. Returns a JWT and also sets it as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response{data=domain.LoginResult}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, domain.LoginMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString("RequestID"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, result.Token, h.cookieMaxAge, "/", "", h.secureCookie, true)

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Logout godoc
// @Summary      Logout
// @Description  Clears the auth cookie. Bearer tokens simply expire.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Profile godoc
// @Summary      Current user profile
// @Description  Returns the authenticated user with their worker or recruiter profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authUC.Profile(c.Request.Context(), middleware.CurrentActor(c).UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved successfully", user)
}
