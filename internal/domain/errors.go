package domain

import "errors"

// Repository errors. Usecases translate these into apperror values with
// entity specific messages.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("duplicate key")
	ErrReferenceViolation = errors.New("foreign key violation")
)
