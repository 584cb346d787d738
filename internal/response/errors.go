package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrUnauthorized       ErrCode = "UNAUTHORIZED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrInvalidToken       ErrCode = "INVALID_TOKEN"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation    ErrCode = "VALIDATION_ERROR"
	ErrInvalidID     ErrCode = "INVALID_ID"
	ErrInvalidDate   ErrCode = "INVALID_DATE"
	ErrInvalidStatus ErrCode = "INVALID_STATUS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrDuplicate        ErrCode = "DUPLICATE"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Booking ───────────────────────────────────────────────────────
	ErrSlotBooked ErrCode = "SLOT_BOOKED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimited ErrCode = "RATE_LIMITED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrDB ErrCode = "DB_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrUnauthorized:
		return "Invalid or expired token"
	case ErrInvalidCredentials:
		return "Invalid email or password"
	case ErrInvalidToken:
		return "Invalid or expired refresh token"

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Insufficient role"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed, check the request fields"
	case ErrInvalidID:
		return "Invalid id"
	case ErrInvalidDate:
		return "Date must be in YYYY-MM-DD format"
	case ErrInvalidStatus:
		return "Status must be one of pending, confirmed, cancelled, completed"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found"
	case ErrDuplicate:
		return "Resource already exists"
	case ErrDependencyExists:
		return "Resource is still referenced by other records"

	// ─── Booking ───────────────────────────────────────────────────────
	case ErrSlotBooked:
		return "This time slot is already booked"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimited:
		return "Too many requests, try again later"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrDB:
		return "Database error"
	default:
		return "Unexpected error"
	}
}
