package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// mapError translates a driver error into one of the domain categories.
// Errors that already carry a domain category keep it.
func mapError(msg string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
			return fmt.Errorf("%s: %w: %s", msg, domain.ErrConcurrencyConflict, pgErr.Message)
		case PgErrorCodeCheckViolation:
			return fmt.Errorf("%s: %w: %s", msg, domain.ErrInsufficientBalance, pgErr.ConstraintName)
		}
	}

	if isDomainCategory(err) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrPersistence, err)
}

func isDomainCategory(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInsufficientBalance) ||
		errors.Is(err, domain.ErrConcurrencyConflict) ||
		errors.Is(err, domain.ErrFairnessVerification) ||
		errors.Is(err, domain.ErrPersistence)
}
