package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/auth"
	"carebridge-backend/pkg/logger"
	"carebridge-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the cookie browsers may send instead of a Bearer header.
const AuthCookieName = "auth_token"

// TokenParser verifies access tokens.
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

func AuthMiddleware(tokens TokenParser, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerOrCookie(c)
		if tokenString == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", "Unauthorized")
			return
		}
		if authenticate(c, tokens, authUC, tokenString) {
			c.Next()
		}
	}
}

// OptionalAuthMiddleware authenticates the caller when a token is present and
// lets anonymous requests through untouched. A bad token is still rejected.
func OptionalAuthMiddleware(tokens TokenParser, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerOrCookie(c)
		if tokenString == "" {
			c.Next()
			return
		}
		if authenticate(c, tokens, authUC, tokenString) {
			c.Next()
		}
	}
}

func bearerOrCookie(c *gin.Context) string {
	// 1. Try to get token from Header
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	// 2. Try to get token from Cookie
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// authenticate validates the token and stores the caller. It aborts the
// request and returns false on failure.
func authenticate(c *gin.Context, tokens TokenParser, authUC domain.AuthUsecase, tokenString string) bool {
	claims, err := tokens.Parse(tokenString)
	if err != nil {
		logger.Log.Debug("Token validation failed", "error", err, "request_id", c.GetString("RequestID"))
		response.Abort(c, http.StatusUnauthorized, "Invalid or expired token", "Unauthorized")
		return false
	}

	// Load the user so role changes and deactivation apply to existing tokens
	user, err := authUC.Profile(c.Request.Context(), claims.ID)
	if err != nil {
		if apperror.Is(err, http.StatusNotFound) {
			response.Abort(c, http.StatusUnauthorized, "User not found", "Unauthorized")
			return false
		}
		c.Error(err)
		c.Abort()
		return false
	}
	if !user.IsActive {
		response.Abort(c, http.StatusUnauthorized, "Account is deactivated", "Unauthorized")
		return false
	}

	c.Set(string(domain.KeyUserID), user.ID)
	c.Set(string(domain.KeyUserEmail), user.Email)
	c.Set(string(domain.KeyUserRole), user.Role)

	// Usecases read the caller from the request context
	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
	ctx = context.WithValue(ctx, domain.KeyUserEmail, user.Email)
	ctx = context.WithValue(ctx, domain.KeyUserRole, user.Role)
	c.Request = c.Request.WithContext(ctx)
	return true
}

// CurrentActor returns the authenticated caller set by AuthMiddleware.
func CurrentActor(c *gin.Context) domain.Actor {
	id, _ := c.Get(string(domain.KeyUserID))
	role, _ := c.Get(string(domain.KeyUserRole))

	actor := domain.Actor{Email: c.GetString(string(domain.KeyUserEmail))}
	actor.UserID, _ = id.(uint)
	actor.Role, _ = role.(domain.Role)
	return actor
}

// RequireRoles lets the request through only when the caller has one of roles.
// It must run after AuthMiddleware.
func RequireRoles(securityLog *security.SecurityLogger, roles ...domain.Role) gin.HandlerFunc {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	required := strings.Join(names, ", ")

	return func(c *gin.Context) {
		actor := CurrentActor(c)
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		securityLog.LogForbidden(c.Request.Context(), actor.UserID, string(actor.Role), c.ClientIP(), c.GetString("RequestID"), c.FullPath())
		response.Abort(c, http.StatusForbidden,
			fmt.Sprintf("User with role %s cannot access this endpoint. Required roles: %s", actor.Role, required),
			"Forbidden")
	}
}
