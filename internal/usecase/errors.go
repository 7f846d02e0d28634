package usecase

import (
	"errors"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
)

// lookupError maps a repository lookup failure to NotFound with msg,
// anything else is an internal error.
func lookupError(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return apperror.Internal(err)
}

// writeError maps a repository write failure. The unique indexes are the
// real enforcement behind the usecase pre-checks, so a duplicate that slips
// through a race still surfaces as Conflict.
func writeError(err error, conflictMsg string) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate) && conflictMsg != "":
		return apperror.Conflict(conflictMsg)
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Resource not found")
	case errors.Is(err, domain.ErrReferenceViolation):
		return apperror.BadRequest("Referenced record does not exist")
	}
	return apperror.Internal(err)
}
