package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"autoClassifieds/internal/models"
)

const (
	uniqueViolation           pq.ErrorCode = "23505"
	invalidTextRepresentation pq.ErrorCode = "22P02"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == uniqueViolation
}

// lookupError maps a failed single-row lookup. A missing row and an id that is
// not a valid uuid both mean "not found".
func lookupError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) || pqCode(err) == invalidTextRepresentation {
		return fmt.Errorf("%s not found: %w", what, models.ErrNotFound)
	}
	return fmt.Errorf("error getting %s: %w", what, err)
}

// affectedOne checks that a write touched a row.
func affectedOne(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s not found: %w", what, models.ErrNotFound)
	}

	return nil
}

// writeError maps a failed UPDATE/DELETE by id.
func writeError(err error, action, what string) error {
	if pqCode(err) == invalidTextRepresentation {
		return fmt.Errorf("%s not found: %w", what, models.ErrNotFound)
	}
	return fmt.Errorf("error %s %s: %w", action, what, err)
}
