package service

import "errors"

// Domain errors returned by services. Repository sentinels (ErrNotFound,
// ErrDuplicate, ErrInUse, ErrMissingReference) pass through unchanged.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrSlotBooked         = errors.New("time slot already booked")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
