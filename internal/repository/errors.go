package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrInUse is returned when a delete is blocked by rows referencing the record.
	ErrInUse = errors.New("record is still referenced")
	// ErrSlotTaken is returned when a tutor already has a live booking at the
	// requested date and time.
	ErrSlotTaken = errors.New("tutor slot already booked")
	// ErrMissingReference matches any *ReferenceError.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// bookingSlotConstraint is the partial unique index guarding live bookings.
const bookingSlotConstraint = "bookings_active_slot_key"

// ReferenceError reports a write that pointed at a row that does not exist.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s does not reference an existing record", e.Field)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}

// mapWriteErr translates driver errors from INSERT and UPDATE statements.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == bookingSlotConstraint {
			return ErrSlotTaken
		}
		return ErrDuplicate
	case pgForeignKeyViolation:
		return &ReferenceError{Field: referenceField(pgErr)}
	}
	return err
}

// mapDeleteErr translates driver errors from DELETE statements.
func mapDeleteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrInUse
	}
	return err
}

// mapReadErr translates a missing single-row result.
func mapReadErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// referenceField derives the offending column from a constraint named
// "<table>_<column>_fkey", the PostgreSQL default.
func referenceField(pgErr *pgconn.PgError) string {
	name := strings.TrimSuffix(pgErr.ConstraintName, "_fkey")
	name = strings.TrimPrefix(name, pgErr.TableName+"_")
	if name == "" {
		return "reference"
	}
	return name
}
