package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/config"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/repository/repotest"
	"github.com/stemsi/tutorly-backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc         *AuthService
	accounts    *repotest.Accounts
	revocations *repotest.Revocations
	codec       *token.Codec
	now         time.Time
}

func (f *authFixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		accounts:    repotest.NewAccounts(),
		revocations: repotest.NewRevocations(),
		now:         time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
	}
	f.codec = token.NewCodec("test-secret", token.WithClock(func() time.Time { return f.now }))
	cfg := &config.Config{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}
	f.svc = NewAuthService(cfg, f.accounts, f.revocations, f.codec, zerolog.Nop())
	return f
}

func TestRegister_ReturnsTokenPair(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.Register(context.Background(), model.SignupRequest{
		Email: "A@X.com", Password: "pw1", Role: model.RoleStudent,
	})
	require.NoError(t, err)

	assert.Equal(t, "User registered!", res.Message)
	assert.Equal(t, model.UserSummary{Email: "a@x.com", Role: model.RoleStudent}, res.User)

	access, err := f.codec.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.False(t, access.IsRefresh())
	assert.Equal(t, "a@x.com", access.Subject)
	assert.Equal(t, f.now.Add(15*time.Minute).Unix(), access.ExpiresAt.Unix())

	refresh, err := f.codec.Verify(res.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refresh.IsRefresh())
	assert.Equal(t, f.now.Add(7*24*time.Hour).Unix(), refresh.ExpiresAt.Unix())

	stored, err := f.accounts.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Name)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
}

func TestRegister_DefaultsRoleToStudent(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.Register(context.Background(), model.SignupRequest{Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, res.User.Role)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  model.SignupRequest
	}{
		{"missing email", model.SignupRequest{Password: "pw"}},
		{"blank email", model.SignupRequest{Email: "   ", Password: "pw"}},
		{"missing password", model.SignupRequest{Email: "a@x.com"}},
		{"unknown role", model.SignupRequest{Email: "a@x.com", Password: "pw", Role: "owner"}},
		{"password over 72 bytes", model.SignupRequest{Email: "a@x.com", Password: strings.Repeat("é", 37)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			_, err := f.svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_TruncatesDerivedName(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	email := strings.Repeat("a", 150) + "@x.com"

	_, err := f.svc.Register(ctx, model.SignupRequest{Email: email, Password: "pw"})
	require.NoError(t, err)

	stored, err := f.accounts.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 100), stored.Name)
}

func TestRegister_DuplicateIgnoresCase(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, model.SignupRequest{Email: "A@X.COM", Password: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1", Role: model.RoleTutor})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Authenticate(ctx, "a@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		_, err := f.svc.Authenticate(ctx, "nobody@x.com", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.svc.Authenticate(ctx, "", "pw1")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("success with mixed case email", func(t *testing.T) {
		res, err := f.svc.Authenticate(ctx, " A@x.com ", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "Login successful!", res.Message)
		assert.Equal(t, model.UserSummary{Email: "a@x.com", Role: model.RoleTutor}, res.User)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
	})
}

func TestAuthenticate_StoreFailurePassesThrough(t *testing.T) {
	f := newAuthFixture(t)
	boom := errors.New("connection refused")
	f.accounts.Err = boom

	_, err := f.svc.Authenticate(context.Background(), "a@x.com", "pw1")
	assert.ErrorIs(t, err, boom)
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	t.Run("issues access token", func(t *testing.T) {
		raw, err := f.svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		claims, err := f.codec.Verify(raw)
		require.NoError(t, err)
		assert.False(t, claims.IsRefresh())
		assert.Equal(t, "a@x.com", claims.Email)
	})

	t.Run("rejects access token", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("requires token", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRefresh_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	f.advance(7 * 24 * time.Hour)
	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthorize(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1", Role: model.RoleAdmin})
	require.NoError(t, err)

	claims, err := f.svc.Authorize(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, model.UserSummary{Email: "a@x.com", Role: model.RoleAdmin}, f.svc.WhoAmI(claims))

	_, err = f.svc.Authorize(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh tokens are not bearer credentials")

	f.advance(15 * time.Minute)
	_, err = f.svc.Authorize(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired access token")
}

func TestAuthorize_RevocationStoreFailure(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	boom := errors.New("redis down")
	f.revocations.Err = boom
	_, err = f.svc.Authorize(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	claims, err := f.svc.Authorize(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims, pair.RefreshToken))
	assert.Equal(t, 2, f.revocations.Count())

	_, err = f.svc.Authorize(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_IgnoresForeignRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	mine, err := f.svc.Register(ctx, model.SignupRequest{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	theirs, err := f.svc.Register(ctx, model.SignupRequest{Email: "b@x.com", Password: "pw2"})
	require.NoError(t, err)

	claims, err := f.svc.Authorize(ctx, mine.AccessToken)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx, claims, theirs.RefreshToken))

	_, err = f.svc.Refresh(ctx, theirs.RefreshToken)
	assert.NoError(t, err)
}
