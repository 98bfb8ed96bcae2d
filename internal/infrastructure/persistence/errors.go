package persistence

import (
	"errors"

	"github.com/lib/pq"
	"github.com/prodtrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE code for unique constraint violations
const pgUniqueViolation = "23505"

// translateError maps driver-level errors to domain errors.
// Unique index violations become shared.ErrAlreadyExists so callers can
// retry or surface a conflict; record-not-found becomes shared.ErrNotFound.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return shared.ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}
