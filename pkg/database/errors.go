package database

import (
	"strings"

	"github.com/lib/pq"
	"github.com/riskintel/riskintel-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with a message a
// client can surface. Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Check constraint violation
	case "23514":
		return mapCheckConstraint(pqErr)

	// Unique constraint violation
	case "23505":
		return errors.Conflict("a record with these values already exists")

	// Foreign key violation: a record pointed at a company or sector that
	// no longer exists (or was never the caller's to begin with)
	case "23503":
		return errors.BadRequest("referenced record does not exist")

	// Not null violation
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	default:
		return nil
	}
}

func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "probability_range"):
		return errors.Validation(map[string]string{
			"probability": "must be between 1 and 5",
		})

	case strings.Contains(constraint, "severity_range"):
		return errors.Validation(map[string]string{
			"severity": "must be between 1 and 5",
		})

	case strings.Contains(constraint, "factor_range"):
		return errors.Validation(map[string]string{
			"factors": "each factor score must be between 1 and 5",
		})

	case strings.Contains(constraint, "state_length"):
		return errors.Validation(map[string]string{
			"state": "must be a 2-letter region code",
		})

	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}
