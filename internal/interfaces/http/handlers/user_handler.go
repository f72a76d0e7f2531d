package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nileshnishad/laboursampark-backend/internal/domain/entities"
	domainerrors "github.com/nileshnishad/laboursampark-backend/internal/domain/errors"
	"github.com/nileshnishad/laboursampark-backend/internal/interfaces/http/middleware"
	"github.com/nileshnishad/laboursampark-backend/internal/interfaces/http/response"
	"github.com/nileshnishad/laboursampark-backend/internal/usecases"
	"github.com/nileshnishad/laboursampark-backend/pkg/logger"
	"github.com/nileshnishad/laboursampark-backend/pkg/redis"
)

// UserHandler handles registration, login and profile endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
	otpLimiter  *redis.OTPLimiter
}

// NewUserHandler creates a new user handler. The limiter may be nil when
// Redis is not configured; OTP requests are then unthrottled.
func NewUserHandler(userUsecase *usecases.UserUsecase, otpLimiter *redis.OTPLimiter) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		otpLimiter:  otpLimiter,
	}
}

// Register handles user registration
// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	user, token, err := h.userUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	logger.Info(c.Request.Context(), "user registered")

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login handles user login with either a password or an OTP
// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	authResponse, err := h.userUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":  authResponse.User,
		"token": authResponse.Token,
	})
}

// GetProfile returns the authenticated user's profile
// GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.userUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"user": user,
	})
}

// UpdateProfile applies a partial update to the authenticated user's profile
// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}
	if len(payload) == 0 {
		response.Error(c, domainerrors.BadRequest("Please provide at least one field to update"))
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{
		"user": user,
	})
}

// ChangePassword replaces the authenticated user's password
// POST /api/users/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	if err := h.userUsecase.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// RequestOTP issues a one-time login code for the given identifier
// POST /api/users/request-otp
func (h *UserHandler) RequestOTP(c *gin.Context) {
	var input entities.RequestOTPInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	identifier := input.Email
	if identifier == "" {
		identifier = input.Mobile
	}

	if h.otpLimiter != nil && identifier != "" {
		allowed, err := h.otpLimiter.Allow(c.Request.Context(), identifier)
		if err != nil {
			logger.Warn(c.Request.Context(), "otp limiter unavailable")
		} else if !allowed {
			response.Error(c, domainerrors.TooManyRequests("Too many OTP requests. Please try again later"))
			return
		}
	}

	code, err := h.userUsecase.RequestOTP(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Delivery (SMS/email) is handled by an external service; the code is
	// echoed here for that service to pick up.
	response.Success(c, http.StatusOK, "OTP generated successfully", gin.H{
		"otp": code,
	})
}
