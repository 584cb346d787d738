package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/middleware"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup godoc
// POST /auth/signup
// Registers an account and returns an access/refresh token pair.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login godoc
// POST /auth/login
// Authenticates by email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Refresh godoc
// POST /auth/refresh
// Exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"accessToken": access})
}

// Me godoc
// GET /auth/me
// Returns the identity carried by the presented access token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": h.authService.WhoAmI(claims)})
}

// Logout godoc
// POST /auth/logout
// Revokes the presented access token and, optionally, a refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	// The body is optional.
	var req model.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.Logout(c.Request.Context(), claims, req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
