package postgres

import (
	"errors"

	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeInvalidTextRepr      = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

const (
	constraintUserEmail       = "users_email_key"
	constraintBookingUnique   = "bookings_user_activity_key"
	constraintActivityPricing = "activities_pricing_check"
)

// pgError extracts the SQLSTATE and constraint name from either driver's error type.
func pgError(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}

	return "", "", false
}

// classify maps driver errors onto storage sentinels, keeping the original error in the chain.
func classify(err error) error {
	code, constraint, ok := pgError(err)
	if !ok {
		return err
	}

	switch code {
	case codeUniqueViolation:
		switch constraint {
		case constraintUserEmail:
			return errors.Join(storage.ErrUserExists, err)
		case constraintBookingUnique:
			return errors.Join(storage.ErrAlreadyBooked, err)
		}
	case codeCheckViolation:
		if constraint == constraintActivityPricing {
			return errors.Join(models.ErrInvalidPricing, err)
		}
	case codeInvalidTextRepr:
		// a malformed uuid can never match a row
		return errors.Join(storage.ErrNotFound, err)
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return errors.Join(storage.ErrTransient, err)
	}

	return err
}
