// api/handlers/auth_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asklytics/asklytics-backend/api/middleware"
	"github.com/asklytics/asklytics-backend/api/models"
	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/auth"
	"github.com/asklytics/asklytics-backend/internal/storage"
)

// AuthHandler holds dependencies for the authentication endpoints. All of
// them operate on the fixed auth database, never the caller-supplied one.
type AuthHandler struct {
	DB  *sql.DB
	Cfg *config.Config
}

func NewAuthHandler(db *sql.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		DB:  db,
		Cfg: cfg,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Register binding error: %v", err)
		_ = c.Error(err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		customLog.Warnf("Failed to hash password during registration for email %s: %v", req.Email, err)
		_ = c.Error(err)
		return
	}

	userID := uuid.New().String()
	if err := storage.CreateUser(c.Request.Context(), h.DB, userID, req.Name, req.Mobile, req.Email, hashedPassword); err != nil {
		customLog.Warnf("Failed to create user %s: %v", req.Email, err)
		_ = c.Error(err) // ErrDuplicateUser handled by middleware
		return
	}

	tokenString, err := auth.GenerateJWT(userID, req.Email, h.Cfg.JWTSecret, h.Cfg.JWTExpiration)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := storage.FindUserByID(c.Request.Context(), h.DB, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Successfully registered user with email %s", req.Email)
	c.JSON(http.StatusCreated, models.AuthResponse{Success: true, Token: tokenString, User: user.Public()})
}

// Login verifies credentials and issues a session token. A missing user
// and a wrong password produce the same error so responses cannot be used
// to probe which emails are registered.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Login binding error: %v", err)
		_ = c.Error(err)
		return
	}

	user, err := storage.FindActiveUserByEmail(c.Request.Context(), h.DB, req.Email)
	if err != nil {
		customLog.Warnf("Login failed for email %s: %v", req.Email, err)
		// Only an absent or inactive account masquerades as bad
		// credentials; an auth-store failure is a server error.
		if !errors.Is(err, storage.ErrUserNotFound) {
			_ = c.Error(err)
			return
		}
		_ = c.Error(storage.ErrInvalidCredentials)
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		customLog.Warnf("Login attempt failed for email %s: invalid password", user.Email)
		_ = c.Error(storage.ErrInvalidCredentials)
		return
	}

	now := time.Now()
	if err := storage.UpdateLastLogin(c.Request.Context(), h.DB, user.ID, now); err != nil {
		_ = c.Error(err)
		return
	}
	user.LastLogin = &now

	tokenString, err := auth.GenerateJWT(user.ID, user.Email, h.Cfg.JWTSecret, h.Cfg.JWTExpiration)
	if err != nil {
		customLog.Warnf("Failed to generate JWT for user %s: %v", user.ID, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Success: true, Token: tokenString, User: user.Public()})
}

// ForgotPassword resets the password when both email and mobile match an
// active user exactly.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("ForgotPassword binding error: %v", err)
		_ = c.Error(err)
		return
	}

	user, err := storage.FindActiveUserByEmailAndMobile(c.Request.Context(), h.DB, req.Email, req.Mobile)
	if err != nil {
		customLog.Warnf("ForgotPassword failed for email %s: %v", req.Email, err)
		if !errors.Is(err, storage.ErrUserNotFound) {
			_ = c.Error(err)
			return
		}
		_ = c.Error(storage.ErrInvalidCredentials)
		return
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := storage.UpdatePasswordHash(c.Request.Context(), h.DB, user.ID, hashedPassword); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Password reset for user %s", user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

// Me returns the authenticated user's public profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := storage.FindUserByID(c.Request.Context(), h.DB, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

// UpdateProfile replaces name, email, and mobile for the authenticated
// user. Colliding with another user's email or mobile is a conflict.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("UpdateProfile binding error: %v", err)
		_ = c.Error(err)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	if err := storage.UpdateProfile(c.Request.Context(), h.DB, userID, req.Name, req.Email, req.Mobile); err != nil {
		customLog.Warnf("Failed to update profile for user %s: %v", userID, err)
		_ = c.Error(err)
		return
	}

	user, err := storage.FindUserByID(c.Request.Context(), h.DB, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

// ChangePassword re-verifies the current password before overwriting it.
// A failed verification leaves the stored hash untouched.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("ChangePassword binding error: %v", err)
		_ = c.Error(err)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	user, err := storage.FindUserByID(c.Request.Context(), h.DB, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		customLog.Warnf("ChangePassword failed for user %s: current password mismatch", userID)
		_ = c.Error(storage.ErrInvalidCredentials)
		return
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := storage.UpdatePasswordHash(c.Request.Context(), h.DB, userID, hashedPassword); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}
