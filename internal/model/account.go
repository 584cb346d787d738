package model

import "time"

// Account roles. Every token carries exactly one of these.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// IsValidRole reports whether role is one of the known account roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// Account is a login identity, keyed by its lower-cased email.
type Account struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the public view of an account returned by the auth endpoints.
type UserSummary struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignupRequest is the payload for account registration.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=student tutor admin"`
	Name     string `json:"name" binding:"max=100"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest optionally names a refresh token to revoke alongside the
// access token presented in the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message      string      `json:"message"`
	User         UserSummary `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}
