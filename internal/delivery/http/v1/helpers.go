package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/security"
	"carebridge-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// RoleGuard builds a middleware that admits only the given roles.
type RoleGuard func(roles ...domain.Role) gin.HandlerFunc

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.Error(apperror.BadRequest(fmt.Sprintf("Invalid %s", param)))
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds and validates the request body, reporting field errors by
// their JSON names.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return false
	}
	return true
}

func queryUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.Error(apperror.BadRequest(fmt.Sprintf("Invalid %s", key)))
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func queryBool(c *gin.Context, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.Error(apperror.BadRequest(fmt.Sprintf("%s must be true or false", key)))
		return nil, false
	}
	return &v, true
}

// queryPage reads page and limit. Out of range values are clamped later by
// domain.NormalizePage.
func queryPage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(domain.DefaultPageSize)))
	return page, limit
}

// formFile reads an optional multipart file. A missing field yields nil.
func formFile(c *gin.Context, field string) (*domain.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperror.BadRequest("Invalid multipart form")
	}
	if header.Size > security.MaxAvatarSize {
		return nil, apperror.BadRequest("File is too large. Maximum size is 5MB")
	}
	if err := security.ValidateFileExtension(header.Filename); err != nil {
		return nil, apperror.BadRequest("Invalid avatar: " + err.Error())
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.BadRequest("Unable to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, security.MaxAvatarSize+1))
	if err != nil {
		return nil, apperror.BadRequest("Unable to read uploaded file")
	}

	return &domain.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == "multipart/form-data"
}
