package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/config"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/token"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration, login, token refresh and
// revocation.
type AuthService struct {
	cfg         *config.Config
	accounts    repository.AccountRepository
	revocations repository.RevocationStore
	codec       *token.Codec
	log         zerolog.Logger

	// dummyHash is compared against on unknown emails so both failure paths
	// cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService creates a new AuthService. revocations may be nil, in which
// case logout is a no-op and tokens live until expiry.
func NewAuthService(
	cfg *config.Config,
	accounts repository.AccountRepository,
	revocations repository.RevocationStore,
	codec *token.Codec,
	log zerolog.Logger,
) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cfg.BcryptCost)
	return &AuthService{
		cfg:         cfg,
		accounts:    accounts,
		revocations: revocations,
		codec:       codec,
		log:         log.With().Str("component", "auth_service").Logger(),
		dummyHash:   dummy,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// bcrypt only hashes the first 72 bytes and rejects longer input. Names are
// stored in a VARCHAR(100) column.
const (
	maxPasswordBytes = 72
	maxNameLen       = 100
)

// Register creates an account and returns a fresh token pair.
// Role defaults to student and name to the local part of the email.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("email and password are required")
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, invalid("password must be at most 72 bytes")
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	if !model.IsValidRole(role) {
		return nil, invalid("role must be one of student, tutor, admin")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("Account registered")

	return s.issuePair(account, "User registered!")
}

// Authenticate checks credentials and returns a fresh token pair. Unknown
// emails and wrong passwords fail identically.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := s.CheckPassword(account.PasswordHash, password); err != nil {
		return nil, err
	}

	return s.issuePair(account, "Login successful!")
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", invalid("refreshToken is required")
	}

	claims, err := s.codec.Verify(refreshToken)
	if err != nil || !claims.IsRefresh() {
		return "", ErrInvalidToken
	}

	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrInvalidToken
	}

	return s.codec.Issue(accessClaims(claims.Subject, claims.Email, claims.Role), s.cfg.AccessTokenTTL)
}

// Authorize validates an access token presented as a bearer credential.
// Refresh tokens and revoked tokens are rejected with ErrInvalidToken.
func (s *AuthService) Authorize(ctx context.Context, raw string) (*token.Claims, error) {
	claims, err := s.codec.Verify(raw)
	if err != nil || claims.IsRefresh() {
		return nil, ErrInvalidToken
	}

	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the presented access token and, when given and valid for the
// same account, the refresh token.
func (s *AuthService) Logout(ctx context.Context, access *token.Claims, refreshToken string) error {
	if s.revocations == nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, access.ID, s.codec.Remaining(access)); err != nil {
		return err
	}

	if refreshToken == "" {
		return nil
	}
	refresh, err := s.codec.Verify(refreshToken)
	if err != nil || !refresh.IsRefresh() || refresh.Subject != access.Subject {
		return nil
	}
	return s.revocations.Revoke(ctx, refresh.ID, s.codec.Remaining(refresh))
}

// WhoAmI returns the identity carried by verified claims.
func (s *AuthService) WhoAmI(claims *token.Claims) model.UserSummary {
	return model.UserSummary{Email: claims.Email, Role: claims.Role}
}

func (s *AuthService) issuePair(a *model.Account, message string) (*model.AuthResponse, error) {
	key := normalizeEmail(a.Email)

	access, err := s.codec.Issue(accessClaims(key, key, a.Role), s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshClaims := accessClaims(key, key, a.Role)
	refreshClaims.Type = token.KindRefresh
	refresh, err := s.codec.Issue(refreshClaims, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Message:      message,
		User:         model.UserSummary{Email: key, Role: a.Role},
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if s.revocations == nil {
		return false, nil
	}
	return s.revocations.IsRevoked(ctx, jti)
}

func accessClaims(subject, email, role string) token.Claims {
	return token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Email:            email,
		Role:             role,
		Type:             token.KindAccess,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
