package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/auth"
	"carebridge-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	users map[uint]*domain.User
}

func (s stubAuth) Login(context.Context, string, string, domain.LoginMeta) (*domain.LoginResult, error) {
	return nil, errors.New("not used")
}

func (s stubAuth) Profile(_ context.Context, id uint) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, apperror.NotFound("User not found")
}

func nopSecurityLogger() *security.SecurityLogger {
	return security.NewSecurityLogger(zap.NewNop(), "carebridge-test", "test")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "pong", nil)
	})

	t.Run("Should generate an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, decode(t, w).RequestID)
	})

	t.Run("Should keep a valid incoming id and replace garbage", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

		req = httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := stubAuth{users: map[uint]*domain.User{
		7: {ID: 7, Email: "rec@corp.test", Role: domain.RoleRecruiter, IsActive: true},
		8: {ID: 8, Email: "gone@corp.test", Role: domain.RoleWorker, IsActive: false},
	}}

	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/me", AuthMiddleware(tokens, users), func(c *gin.Context) {
		actor := CurrentActor(c)
		fromCtx, _ := c.Request.Context().Value(domain.KeyUserID).(uint)
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID, "role": actor.Role, "ctx": fromCtx})
	})

	call := func(setup func(*http.Request)) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		setup(req)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should reject a request without credentials", func(t *testing.T) {
		w := call(func(*http.Request) {})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, decode(t, w).Success)
	})

	t.Run("Should reject a forged token", func(t *testing.T) {
		forged, err := auth.NewTokenManager("other-secret", time.Hour).Generate(7, "rec@corp.test", "ADMIN")
		require.NoError(t, err)

		w := call(func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+forged) })
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should accept a Bearer token and expose the caller", func(t *testing.T) {
		token, err := tokens.Generate(7, "rec@corp.test", "RECRUITER")
		require.NoError(t, err)

		w := call(func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) })
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"role":"RECRUITER","ctx":7}`, w.Body.String())
	})

	t.Run("Should accept the auth cookie", func(t *testing.T) {
		token, err := tokens.Generate(7, "rec@corp.test", "RECRUITER")
		require.NoError(t, err)

		w := call(func(req *http.Request) { req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token}) })
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should reject deactivated and unknown users", func(t *testing.T) {
		inactive, _ := tokens.Generate(8, "gone@corp.test", "WORKER")
		w := call(func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+inactive) })
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Account is deactivated", decode(t, w).Message)

		unknown, _ := tokens.Generate(99, "ghost@corp.test", "WORKER")
		w = call(func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+unknown) })
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := stubAuth{users: map[uint]*domain.User{
		1: {ID: 1, Email: "admin@corp.test", Role: domain.RoleAdmin, IsActive: true},
	}}

	r := gin.New()
	r.POST("/users", OptionalAuthMiddleware(tokens, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": CurrentActor(c).Role})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":""}`, w.Body.String())

	token, err := tokens.Generate(1, "admin@corp.test", "ADMIN")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"ADMIN"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) {
			c.Set(string(domain.KeyUserID), uint(3))
			c.Set(string(domain.KeyUserRole), domain.Role(c.Query("role")))
		},
		RequireRoles(nopSecurityLogger(), domain.RoleAdmin, domain.RoleRecruiter),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin?role=RECRUITER", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin?role=WORKER", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User with role WORKER cannot access this endpoint. Required roles: ADMIN, RECRUITER", body.Message)
	assert.Equal(t, "Forbidden", body.Error)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) {
		c.Error(apperror.Conflict("Job category with this name already exists"))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("pq: connection refused on 10.0.0.5"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Job category with this name already exists", body.Message)
	assert.Equal(t, "Conflict", body.Error)
	assert.Equal(t, http.StatusConflict, body.StatusCode)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Equal(t, "InternalServerError", decode(t, w).Error)
}

func TestRateLimitWithoutRedis(t *testing.T) {
	config := DefaultRateLimitConfig(2, time.Minute)
	config.KeyPrefix = "rl:test:" + uuid.NewString() + ":"

	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(config, nopSecurityLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware("https://cdn.carebridge.test"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "img-src 'self' data: https://cdn.carebridge.test;")
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

type fixedAllower struct {
	allowed bool
	calls   int
}

func (f *fixedAllower) AllowUpload(context.Context, string, uint) (bool, int, error) {
	f.calls++
	return f.allowed, 60, nil
}

func TestUploadLimit(t *testing.T) {
	limiter := &fixedAllower{allowed: false}
	r := gin.New()
	r.POST("/users", UploadLimit(limiter), func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, limiter.calls)

	req = httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}
