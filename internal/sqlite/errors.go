package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/taskpane/internal/repository"
)

const (
	fkViolation     = "FOREIGN KEY constraint failed"
	uniqueViolation = "UNIQUE constraint failed"
)

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), fkViolation)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), uniqueViolation)
}

// insertError maps a failed INSERT onto the repository sentinels.
func insertError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", entity, repository.ErrForeignKeyViolation)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", entity, repository.ErrConflict)
	default:
		return fmt.Errorf("failed to create %s: %w", entity, err)
	}
}
