package repository

import (
	"errors"
	"strings"

	"classifieds/internal/models"

	"gorm.io/gorm"
)

// isDuplicateKey reports whether err is a uniqueness violation. TranslateError
// covers the configured dialects; the string checks cover handles opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(message)
	}
	return models.NewInternalError(err)
}
