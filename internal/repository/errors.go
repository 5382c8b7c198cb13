package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// notFound wraps gorm.ErrRecordNotFound with the entity that was missing so
// callers can keep using errors.Is(err, gorm.ErrRecordNotFound).
func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, gorm.ErrRecordNotFound)
}
