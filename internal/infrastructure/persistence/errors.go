package persistence

import (
	"errors"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a unique constraint violation.
// The connection is opened with TranslateError, so Postgres SQLSTATE 23505
// surfaces as gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
