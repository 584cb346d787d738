package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
	"github.com/stemsi/tutorly-backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthorizer struct {
	claims map[string]*token.Claims
	err    error
	seen   []string
}

func (f *fakeAuthorizer) Authorize(_ context.Context, raw string) (*token.Claims, error) {
	f.seen = append(f.seen, raw)
	if f.err != nil {
		return nil, f.err
	}
	claims, ok := f.claims[raw]
	if !ok {
		return nil, service.ErrInvalidToken
	}
	return claims, nil
}

func newAuthorizer() *fakeAuthorizer {
	return &fakeAuthorizer{claims: map[string]*token.Claims{
		"student-token": {Email: "s@x.com", Role: "student"},
		"admin-token":   {Email: "a@x.com", Role: "admin"},
	}}
}

func guardedRouter(a Authorizer, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/private", RequireAuth(a, roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetClaims(c).Email})
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth_RejectsMissingOrMalformedHeader(t *testing.T) {
	a := newAuthorizer()
	r := guardedRouter(a)

	for _, header := range []string{"", "student-token", "Basic student-token", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := serve(r, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		body := decodeError(t, w)
		assert.Equal(t, response.ErrUnauthorized, body.Code)
		assert.Equal(t, "Missing token", body.Message)
	}
	assert.Empty(t, a.seen, "malformed headers never reach the authorizer")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := guardedRouter(newAuthorizer())

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrUnauthorized, decodeError(t, w).Code)
}

func TestRequireAuth_SetsClaims(t *testing.T) {
	a := newAuthorizer()
	r := guardedRouter(a)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "bearer student-token")
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"s@x.com"}`, w.Body.String())
	assert.Equal(t, []string{"student-token"}, a.seen)
}

func TestRequireAuth_Roles(t *testing.T) {
	r := guardedRouter(newAuthorizer(), "tutor", "admin")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	w := serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, response.ErrForbidden, decodeError(t, w).Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestRequireAuth_StoreFailure(t *testing.T) {
	a := newAuthorizer()
	a.err = errors.New("dial tcp: connection refused")
	r := guardedRouter(a)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	w := serve(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, response.ErrDB, body.Code)
	assert.Contains(t, body.Details, "connection refused")
}

func TestGetClaims_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))

	c.Set(ContextKeyClaims, "not claims")
	assert.Nil(t, GetClaims(c))
}
