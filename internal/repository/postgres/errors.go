package postgres

import (
	"errors"
	"fmt"
	"strings"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
)

// translateError maps gorm errors onto the domain sentinels. The gorm
// connection must be opened with TranslateError so driver specific
// constraint errors arrive as gorm.ErrDuplicatedKey / ErrForeignKeyViolated.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrReferenceViolation, err)
	}
	return err
}

// userSummaryColumns limits preloaded users to the fields exposed in summaries.
func userSummaryColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email", "avatar")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern wraps value for a substring match. Queries using it must add
// ESCAPE '\' so wildcards typed by the caller match literally.
func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = domain.DefaultPageSize
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
