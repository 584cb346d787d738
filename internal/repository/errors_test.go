package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapWriteErr(t *testing.T) {
	assert.NoError(t, mapWriteErr(nil))
	assert.ErrorIs(t, mapWriteErr(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, mapWriteErr(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	slot := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: bookingSlotConstraint}
	assert.ErrorIs(t, mapWriteErr(slot), ErrSlotTaken)

	email := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "students_email_key"}
	assert.ErrorIs(t, mapWriteErr(email), ErrDuplicate)

	fk := &pgconn.PgError{Code: pgForeignKeyViolation, TableName: "bookings", ConstraintName: "bookings_tutor_id_fkey"}
	err := mapWriteErr(fk)
	var ref *ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "tutor_id", ref.Field)
	assert.ErrorIs(t, err, ErrMissingReference)
	assert.Equal(t, "tutor_id does not reference an existing record", err.Error())

	check := &pgconn.PgError{Code: "23514"}
	assert.Same(t, check, mapWriteErr(check))

	other := errors.New("conn reset")
	assert.Same(t, other, mapWriteErr(other))
}

func TestMapDeleteErr(t *testing.T) {
	assert.NoError(t, mapDeleteErr(nil))

	fk := &pgconn.PgError{Code: pgForeignKeyViolation, TableName: "bookings"}
	assert.ErrorIs(t, mapDeleteErr(fk), ErrInUse)

	other := errors.New("timeout")
	assert.Same(t, other, mapDeleteErr(other))
}

func TestMapReadErr(t *testing.T) {
	assert.ErrorIs(t, mapReadErr(pgx.ErrNoRows), ErrNotFound)
	assert.NoError(t, mapReadErr(nil))
}

func TestReferenceField(t *testing.T) {
	tests := []struct {
		table, constraint, want string
	}{
		{"grades", "grades_course_id_fkey", "course_id"},
		{"tutor_courses", "tutor_courses_tutor_id_fkey", "tutor_id"},
		{"payments", "payments_student_id_fkey", "student_id"},
		{"grades", "", "reference"},
	}
	for _, tt := range tests {
		got := referenceField(&pgconn.PgError{TableName: tt.table, ConstraintName: tt.constraint})
		assert.Equal(t, tt.want, got, tt.constraint)
	}
}
