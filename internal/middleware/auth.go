package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
	"github.com/stemsi/tutorly-backend/internal/token"
)

const (
	// ContextKeyClaims is the Gin context key for verified token claims.
	ContextKeyClaims = "claims"
)

// Authorizer turns a raw bearer credential into verified claims.
// *service.AuthService satisfies it.
type Authorizer interface {
	Authorize(ctx context.Context, raw string) (*token.Claims, error)
}

// RequireAuth validates the bearer token from the Authorization header and,
// when roles are given, requires the token's role to be one of them.
func RequireAuth(authorizer Authorizer, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.AbortFailWithMessage(c, http.StatusUnauthorized, response.ErrUnauthorized, "Missing token")
			return
		}

		claims, err := authorizer.Authorize(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
				return
			}
			_ = c.Error(err)
			c.Abort()
			response.FailWithDetails(c, http.StatusInternalServerError, response.ErrDB, err.Error())
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the verified claims from the Gin context.
func GetClaims(c *gin.Context) *token.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
