package handlers

import (
	"errors"
	"net/http"

	"github.com/Biriato/ProyectoWeb/internal/middleware"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Login outcomes reported to the LoginRecorder.
const (
	LoginSuccess   = "success"
	LoginFailure   = "failure"
	LoginThrottled = "throttled"
)

// LoginRecorder receives the outcome of every login attempt.
type LoginRecorder interface {
	LoginAttempt(outcome string)
}

// AuthHandler handles registration, login and self-service account requests.
type AuthHandler struct {
	authService service.AuthService
	recorder    LoginRecorder
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, recorder LoginRecorder) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		recorder:    recorder,
	}
}

// Register godoc
// @Summary Register a user
// @Description Create a user account with role user and an empty list
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterRequest true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Router /auth [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			h.record(LoginThrottled)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.record(LoginFailure)
			middleware.Logger(c).Info("login failed", zap.String("email", req.Email))
		}
		respondServiceError(c, err, "login failed")
		return
	}

	h.record(LoginSuccess)
	middleware.Logger(c).Info("login succeeded", zap.Int64("user_id", response.UserID))
	c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary User logout
// @Description Acknowledge logout; tokens are stateless and expire on their own
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := callerClaims(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// ChangePassword godoc
// @Summary Change password
// @Description Replace the caller's password after checking the old one
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	var req service.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), claims, req); err != nil {
		respondServiceError(c, err, "failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Change the authenticated user's name or email
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/update-profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondServiceError(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully", "user": user})
}

func (h *AuthHandler) record(outcome string) {
	if h.recorder != nil {
		h.recorder.LoginAttempt(outcome)
	}
}
